package vocab

import (
	sent "github.com/revelaction/tagset/sentence"
)

// StartTag is the display name of the start of sentence slot appended after
// the last tag of a tag Vocabulary. It is never stored as an entry, so it
// can not collide with a real tag.
const StartTag = "<S>"

// Vocabulary is an insertion ordered bijection between tokens and dense
// indexes starting at 0. The index of a token is its one-hot axis position.
//
// A Vocabulary is not safe for concurrent writes. Once built it is only
// read.
type Vocabulary struct {
	index  map[string]int
	tokens []string
}

// New returns a Vocabulary with the given tokens in order. Duplicates keep
// their first position.
func New(tokens ...string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int, len(tokens))}
	for _, t := range tokens {
		v.Add(t)
	}
	return v
}

// Add returns the index of token, adding it at the end if not present.
func (v *Vocabulary) Add(token string) int {
	if i, ok := v.index[token]; ok {
		return i
	}

	i := len(v.tokens)
	v.index[token] = i
	v.tokens = append(v.tokens, token)
	return i
}

// Index returns the index of token and whether it is present.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Token returns the token at index i. i must be in [0, Len()).
func (v *Vocabulary) Token(i int) string {
	return v.tokens[i]
}

func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns a copy of the tokens in index order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Equal reports whether both vocabularies assign the same indexes.
func (v *Vocabulary) Equal(o *Vocabulary) bool {
	if v.Len() != o.Len() {
		return false
	}

	for i, t := range v.tokens {
		if o.tokens[i] != t {
			return false
		}
	}
	return true
}

// Words builds the word Vocabulary of the corpus in encounter order.
func Words(corpus sent.Corpus) *Vocabulary {
	return build(corpus, func(s sent.Sentence) []string { return s.Words })
}

// Tags builds the tag Vocabulary of the corpus in encounter order.
func Tags(corpus sent.Corpus) *Vocabulary {
	return build(corpus, func(s sent.Sentence) []string { return s.Tags })
}

func build(corpus sent.Corpus, field func(sent.Sentence) []string) *Vocabulary {
	v := New()
	for _, s := range corpus {
		for _, t := range field(s) {
			v.Add(t)
		}
	}
	return v
}
