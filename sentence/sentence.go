package sentence

import "errors"

// ErrInvalid is returned when the parallel token slices of a Sentence do
// not have the same length.
var ErrInvalid = errors.New("sentence: words, tags and features differ in length")

// Sentence is one annotated sentence of a treebank. Words, Tags and
// Features are parallel: the i-th entry of each belongs to the i-th token.
type Sentence struct {
	// sent_id metadata, empty if the source has none
	ID string `json:"id,omitempty"`

	// The raw sentence text, may be empty
	Text string `json:"text,omitempty"`

	// The canonical form (lemma) of each token.
	Words []string `json:"words"`

	// The unmodified surface form of each token. Only used for display.
	Forms []string `json:"forms,omitempty"`

	// The part of speech tag of each token.
	Tags []string `json:"tags"`

	// The morphological feature columns of each token, joined by a space.
	Features []string `json:"features"`
}

// Len returns the number of tokens of the sentence.
func (s Sentence) Len() int {
	return len(s.Words)
}

// Valid reports whether the parallel slices agree in length.
func (s Sentence) Valid() bool {
	n := len(s.Words)
	if len(s.Tags) != n || len(s.Features) != n {
		return false
	}

	return s.Forms == nil || len(s.Forms) == n
}

// Corpus is an ordered collection of Sentence
type Corpus []Sentence

// NumTokens returns the number of tokens over all sentences.
func (c Corpus) NumTokens() int {
	n := 0
	for _, s := range c {
		n += s.Len()
	}
	return n
}
