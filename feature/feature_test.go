package feature

import (
	"encoding/json"
	"errors"
	"testing"

	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentenceOf(words, tags []string) sent.Sentence {
	return sent.Sentence{Words: words, Tags: tags, Features: make([]string, len(words))}
}

func testCorpus() sent.Corpus {
	return sent.Corpus{
		sentenceOf([]string{"кіт", "спати", "."}, []string{"NOUN", "VERB", "PUNCT"}),
		sentenceOf([]string{"ой"}, []string{"INTJ"}),
	}
}

func testEncoder(opts ...Option) *Encoder {
	c := testCorpus()
	return NewEncoder(vocab.Words(c), vocab.Tags(c), opts...)
}

// segments splits a row into word, previous tag and end segments.
func segments(e *Encoder, row Vector) (Vector, Vector, uint8) {
	ww, tw := e.WordWidth(), e.TagWidth()
	return row[:ww], row[ww : ww+tw], row[ww+tw]
}

func oneHot(n, i int) Vector {
	v := make(Vector, n)
	v[i] = 1
	return v
}

func TestEncodeWidth(t *testing.T) {
	e := testEncoder()
	words, tags := e.Words(), e.Tags()
	want := words.Len() + tags.Len() + 1 + 1
	require.Equal(t, want, e.Width())

	for _, s := range testCorpus() {
		m, labels, err := e.Encode(s)
		require.NoError(t, err)
		require.Len(t, m, s.Len())
		require.Len(t, labels, s.Len())
		for _, row := range m {
			assert.Len(t, row, want)
		}
	}
}

func TestEncodeEndFlag(t *testing.T) {
	e := testEncoder()
	m, _, err := e.Encode(testCorpus()[0])
	require.NoError(t, err)

	var flags []uint8
	for _, row := range m {
		_, _, end := segments(e, row)
		flags = append(flags, end)
	}
	assert.Equal(t, []uint8{0, 0, 1}, flags)
}

func TestEncodePreviousTagChain(t *testing.T) {
	e := testEncoder()
	m, labels, err := e.Encode(testCorpus()[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"NOUN", "VERB", "PUNCT"}, labels)

	noun, _ := e.Tags().Index("NOUN")
	verb, _ := e.Tags().Index("VERB")
	want := []Vector{
		oneHot(e.TagWidth(), e.StartIndex()),
		oneHot(e.TagWidth(), noun),
		oneHot(e.TagWidth(), verb),
	}

	for i, row := range m {
		_, prev, _ := segments(e, row)
		assert.Equalf(t, want[i], prev, "row %d", i)
	}
}

func TestEncodeWordSegment(t *testing.T) {
	e := testEncoder()
	m, _, err := e.Encode(testCorpus()[0])
	require.NoError(t, err)

	for i, w := range []string{"кіт", "спати", "."} {
		idx, ok := e.Words().Index(w)
		require.True(t, ok)
		word, _, _ := segments(e, m[i])
		assert.Equal(t, oneHot(e.WordWidth(), idx), word)
	}
}

func TestEncodeSingleTokenSentence(t *testing.T) {
	e := testEncoder()
	m, _, err := e.Encode(testCorpus()[1])
	require.NoError(t, err)
	require.Len(t, m, 1)

	_, prev, end := segments(e, m[0])
	assert.Equal(t, oneHot(e.TagWidth(), e.StartIndex()), prev)
	assert.Equal(t, uint8(1), end)
}

func TestEncodeUnknownWord(t *testing.T) {
	e := testEncoder()
	s := sentenceOf([]string{"кіт", "гавкати"}, []string{"NOUN", "VERB"})

	m, labels, err := e.Encode(s)
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Nil(t, labels)
	assert.True(t, errors.Is(err, ErrUnknownToken))

	var ute *UnknownTokenError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, KindWord, ute.Kind)
	assert.Equal(t, "гавкати", ute.Token)
	assert.Equal(t, 1, ute.Position)
}

func TestEncodeUnknownTag(t *testing.T) {
	e := testEncoder()
	s := sentenceOf([]string{"кіт", "спати"}, []string{"NOUN", "AUX"})

	_, _, err := e.Encode(s)
	var ute *UnknownTokenError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, KindTag, ute.Kind)
	assert.Equal(t, "AUX", ute.Token)
	assert.Equal(t, 1, ute.Position)
}

func TestEncodeUnknownSlot(t *testing.T) {
	e := testEncoder(WithUnknownSlot())
	require.Equal(t, e.Words().Len()+1, e.WordWidth())
	require.Equal(t, e.Words().Len(), e.UnknownIndex())

	s := sentenceOf([]string{"гавкати"}, []string{"VERB"})
	m, _, err := e.Encode(s)
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Len(t, m[0], e.Width())

	word, _, _ := segments(e, m[0])
	assert.Equal(t, oneHot(e.WordWidth(), e.UnknownIndex()), word)
}

func TestEncodeInvalidSentence(t *testing.T) {
	e := testEncoder()
	s := sent.Sentence{Words: []string{"кіт"}, Tags: []string{"NOUN", "VERB"}, Features: []string{""}}

	_, _, err := e.Encode(s)
	assert.ErrorIs(t, err, sent.ErrInvalid)
}

func TestSparseMatchesDense(t *testing.T) {
	e := testEncoder()
	s := testCorpus()[0]

	idx, _, err := e.Sparse(s)
	require.NoError(t, err)
	m, _, err := e.Encode(s)
	require.NoError(t, err)

	for i, ix := range idx {
		assert.Equal(t, m[i], e.Dense(ix))
	}
}

func TestColumns(t *testing.T) {
	e := testEncoder(WithUnknownSlot())
	cols := e.Columns()
	require.Len(t, cols, e.Width())
	assert.Equal(t, "w:кіт", cols[0])
	assert.Equal(t, UnknownColumn, cols[e.WordWidth()-1])
	assert.Equal(t, "p:NOUN", cols[e.WordWidth()])
	assert.Equal(t, StartColumn, cols[e.WordWidth()+e.StartIndex()])
	assert.Equal(t, EndColumn, cols[len(cols)-1])
}

func TestColumnsUniqueWithReservedLookingTokens(t *testing.T) {
	c := sent.Corpus{
		sentenceOf([]string{"<UNK>", "unk", "end", "start"}, []string{"<S>", "start", "end", "unk"}),
	}
	e := NewEncoder(vocab.Words(c), vocab.Tags(c), WithUnknownSlot())

	cols := e.Columns()
	require.Len(t, cols, e.Width())

	seen := map[string]bool{}
	for _, col := range cols {
		assert.Falsef(t, seen[col], "duplicate column %q", col)
		seen[col] = true
	}
	assert.Equal(t, "w:<UNK>", cols[0])
	assert.Equal(t, "p:<S>", cols[e.WordWidth()])
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("slot")
	require.NoError(t, err)
	assert.Equal(t, UnknownSlot, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, UnknownFail, p)

	_, err = ParsePolicy("ignore")
	assert.Error(t, err)
}

func TestVectorJSON(t *testing.T) {
	data, err := json.Marshal(Matrix{{0, 1, 0}, {1, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, "[[0,1,0],[1,0,1]]", string(data))

	var m Matrix
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, Matrix{{0, 1, 0}, {1, 0, 1}}, m)

	var v Vector
	assert.Error(t, json.Unmarshal([]byte("[300]"), &v))
}
