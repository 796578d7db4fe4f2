// Package feature encodes sentences into one-hot feature rows for a part of
// speech tagger.
//
// A row is the concatenation of three segments, in this order:
//
//	word      one-hot over the word vocabulary (plus an unknown slot if enabled)
//	prev tag  one-hot over the tag vocabulary plus the start of sentence slot
//	end       1 for the last token of the sentence, 0 otherwise
//
// The previous tag is the annotated tag of the preceding token, never a
// prediction.
package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/vocab"
)

const (
	KindWord = "word"
	KindTag  = "tag"

	// UnknownWord is the display name of the unknown word slot.
	UnknownWord = "<UNK>"
)

// Column names. Vocabulary columns carry a prefix, reserved slots do not, so
// no token can name a reserved column.
const (
	WordPrefix = "w:"
	TagPrefix  = "p:"

	UnknownColumn = "unk"
	StartColumn   = "start"
	EndColumn     = "end"
)

// ErrUnknownToken is matched by every *UnknownTokenError.
var ErrUnknownToken = errors.New("unknown token")

// UnknownTokenError reports a word or tag missing from its vocabulary.
type UnknownTokenError struct {
	Kind     string
	Token    string
	Position int
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown %s %q at position %d", e.Kind, e.Token, e.Position)
}

func (e *UnknownTokenError) Unwrap() error {
	return ErrUnknownToken
}

// Policy decides what happens with words missing from the word vocabulary.
type Policy int

const (
	// UnknownFail returns an *UnknownTokenError.
	UnknownFail Policy = iota

	// UnknownSlot maps the word to a reserved slot after the last word.
	UnknownSlot
)

func (p Policy) String() string {
	switch p {
	case UnknownSlot:
		return "slot"
	default:
		return "fail"
	}
}

// ParsePolicy converts "fail" or "slot" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fail", "":
		return UnknownFail, nil
	case "slot":
		return UnknownSlot, nil
	}
	return UnknownFail, fmt.Errorf("unknown word policy %q, allowed values are fail, slot", s)
}

// Vector is one feature row. All entries are 0 or 1.
type Vector []uint8

// MarshalJSON writes the row as an array of numbers instead of the base64
// string used for byte slices.
func (v Vector) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 2*len(v)+2)
	buf = append(buf, '[')
	for i, x := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(x), 10)
	}
	return append(buf, ']'), nil
}

func (v *Vector) UnmarshalJSON(data []byte) error {
	// decode through []int, []uint8 would expect base64
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ints := make([]uint8, len(raw))
	for i, x := range raw {
		if x < 0 || x > 255 {
			return fmt.Errorf("feature value %d out of range", x)
		}
		ints[i] = uint8(x)
	}
	*v = ints
	return nil
}

// Matrix is a sequence of rows of identical width.
type Matrix []Vector

// Index holds the active position of each segment of one row, relative to
// the start of the segment.
type Index struct {
	Word    int  `json:"word"`
	PrevTag int  `json:"prev"`
	End     bool `json:"end"`
}

type Option func(*Encoder)

// WithUnknownSlot sets the UnknownSlot policy.
func WithUnknownSlot() Option {
	return func(e *Encoder) {
		e.policy = UnknownSlot
	}
}

// WithPolicy sets the unknown word policy.
func WithPolicy(p Policy) Option {
	return func(e *Encoder) {
		e.policy = p
	}
}

// Encoder turns sentences into feature rows. It only reads its
// vocabularies, so it is safe for concurrent use as long as they are not
// modified.
type Encoder struct {
	words  *vocab.Vocabulary
	tags   *vocab.Vocabulary
	policy Policy
}

func NewEncoder(words, tags *vocab.Vocabulary, opts ...Option) *Encoder {
	e := &Encoder{words: words, tags: tags}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoder) Words() *vocab.Vocabulary { return e.words }
func (e *Encoder) Tags() *vocab.Vocabulary  { return e.tags }
func (e *Encoder) Policy() Policy           { return e.policy }

// WordWidth is the length of the word segment.
func (e *Encoder) WordWidth() int {
	if e.policy == UnknownSlot {
		return e.words.Len() + 1
	}
	return e.words.Len()
}

// TagWidth is the length of the previous tag segment, start slot included.
func (e *Encoder) TagWidth() int {
	return e.tags.Len() + 1
}

// Width is the length of every row produced by the Encoder.
func (e *Encoder) Width() int {
	return e.WordWidth() + e.TagWidth() + 1
}

// StartIndex is the position of the start of sentence slot inside the
// previous tag segment.
func (e *Encoder) StartIndex() int {
	return e.tags.Len()
}

// UnknownIndex is the position of the unknown word slot inside the word
// segment, or -1 with the UnknownFail policy.
func (e *Encoder) UnknownIndex() int {
	if e.policy == UnknownSlot {
		return e.words.Len()
	}
	return -1
}

// Columns returns the name of each column of a row. Names are unique.
func (e *Encoder) Columns() []string {
	cols := make([]string, 0, e.Width())
	for _, w := range e.words.Tokens() {
		cols = append(cols, WordPrefix+w)
	}
	if e.policy == UnknownSlot {
		cols = append(cols, UnknownColumn)
	}

	for _, t := range e.tags.Tokens() {
		cols = append(cols, TagPrefix+t)
	}
	cols = append(cols, StartColumn)

	return append(cols, EndColumn)
}

// Sparse returns the active indexes of each token of s and its labels.
// Nothing is returned on error.
func (e *Encoder) Sparse(s sent.Sentence) ([]Index, []string, error) {
	if !s.Valid() {
		return nil, nil, sent.ErrInvalid
	}

	n := s.Len()
	idx := make([]Index, n)
	labels := make([]string, n)

	for i := 0; i < n; i++ {
		w, err := e.wordIndex(s.Words[i], i)
		if err != nil {
			return nil, nil, err
		}

		if _, ok := e.tags.Index(s.Tags[i]); !ok {
			return nil, nil, &UnknownTokenError{Kind: KindTag, Token: s.Tags[i], Position: i}
		}

		prev := e.StartIndex()
		if i > 0 {
			// known, checked in the previous iteration
			prev, _ = e.tags.Index(s.Tags[i-1])
		}

		idx[i] = Index{Word: w, PrevTag: prev, End: i == n-1}
		labels[i] = s.Tags[i]
	}

	return idx, labels, nil
}

func (e *Encoder) wordIndex(word string, pos int) (int, error) {
	if i, ok := e.words.Index(word); ok {
		return i, nil
	}

	if e.policy == UnknownSlot {
		return e.words.Len(), nil
	}

	return 0, &UnknownTokenError{Kind: KindWord, Token: word, Position: pos}
}

// Encode returns one row per token of s, and the tag of each token as
// label. Nothing is returned on error.
func (e *Encoder) Encode(s sent.Sentence) (Matrix, []string, error) {
	idx, labels, err := e.Sparse(s)
	if err != nil {
		return nil, nil, err
	}

	width := e.Width()
	// one backing array for the whole sentence
	backing := make([]uint8, len(idx)*width)
	m := make(Matrix, len(idx))
	for i, ix := range idx {
		row := Vector(backing[i*width : (i+1)*width : (i+1)*width])
		e.fill(row, ix)
		m[i] = row
	}

	return m, labels, nil
}

// Dense expands ix into a new row.
func (e *Encoder) Dense(ix Index) Vector {
	row := make(Vector, e.Width())
	e.fill(row, ix)
	return row
}

func (e *Encoder) fill(row Vector, ix Index) {
	wordWidth := e.WordWidth()
	row[ix.Word] = 1
	row[wordWidth+ix.PrevTag] = 1
	if ix.End {
		row[wordWidth+e.TagWidth()] = 1
	}
}
