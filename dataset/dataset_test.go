package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/revelaction/tagset/feature"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentenceOf(words, tags []string) sent.Sentence {
	return sent.Sentence{Words: words, Tags: tags, Features: make([]string, len(words))}
}

func twoSentences() sent.Corpus {
	return sent.Corpus{
		sentenceOf([]string{"кіт", "спати", "."}, []string{"NOUN", "VERB", "PUNCT"}),
		sentenceOf([]string{"пес", "гавкати"}, []string{"NOUN", "VERB"}),
	}
}

func encoderFor(c sent.Corpus, opts ...feature.Option) *feature.Encoder {
	return feature.NewEncoder(vocab.Words(c), vocab.Tags(c), opts...)
}

func TestAssembleOrdering(t *testing.T) {
	c := twoSentences()
	enc := encoderFor(c)

	ds, err := Assemble(c, enc)
	require.NoError(t, err)
	require.Equal(t, 5, ds.Len())
	require.Len(t, ds.X, 5)
	assert.Equal(t, enc.Width(), ds.Width())

	offset := 0
	for _, s := range c {
		m, labels, err := enc.Encode(s)
		require.NoError(t, err)
		for i := range m {
			assert.Equal(t, m[i], ds.X[offset+i])
			assert.Equal(t, labels[i], ds.Y[offset+i])
		}
		offset += s.Len()
	}

	assert.Equal(t, []string{"NOUN", "VERB", "PUNCT", "NOUN", "VERB"}, ds.Y)
}

func TestAssembleEmpty(t *testing.T) {
	c := sent.Corpus{}
	ds, err := Assemble(c, encoderFor(c))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, 0, ds.Width())
}

func TestAssembleFailFast(t *testing.T) {
	c := twoSentences()
	enc := encoderFor(c[:1])

	ds, err := Assemble(c, enc)
	require.Error(t, err)
	assert.Nil(t, ds.X)
	assert.Nil(t, ds.Y)
	assert.True(t, errors.Is(err, feature.ErrUnknownToken))
	assert.Contains(t, err.Error(), "sentence 1")

	var ute *feature.UnknownTokenError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "пес", ute.Token)
	assert.Equal(t, 0, ute.Position)
}

func TestAssembleProgress(t *testing.T) {
	c := twoSentences()

	var calls [][2]int
	_, err := Assemble(c, encoderFor(c), WithProgress(func(current, total int) {
		calls = append(calls, [2]int{current, total})
	}))
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}

func TestAssembleParallelMatchesSequential(t *testing.T) {
	var c sent.Corpus
	for i := 0; i < 50; i++ {
		c = append(c, twoSentences()...)
		c = append(c, sentenceOf([]string{"ой"}, []string{"INTJ"}))
	}
	enc := encoderFor(c)

	want, err := Assemble(c, enc)
	require.NoError(t, err)

	var mu sync.Mutex
	last := 0
	got, err := AssembleParallel(context.Background(), c, enc, 4, WithProgress(func(current, total int) {
		mu.Lock()
		defer mu.Unlock()
		if current > last {
			last = current
		}
	}))
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, len(c), last)
}

func TestAssembleParallelError(t *testing.T) {
	c := twoSentences()
	enc := encoderFor(c[:1])

	ds, err := AssembleParallel(context.Background(), c, enc, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, feature.ErrUnknownToken))
	assert.Nil(t, ds.X)
}

func TestAssembleParallelCancelled(t *testing.T) {
	c := twoSentences()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AssembleParallel(ctx, c, encoderFor(c), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssembleSparse(t *testing.T) {
	c := twoSentences()
	enc := encoderFor(c)

	dense, err := Assemble(c, enc)
	require.NoError(t, err)
	sp, err := AssembleSparse(c, enc)
	require.NoError(t, err)

	require.Equal(t, dense.Len(), sp.Len())
	assert.Equal(t, dense.Y, sp.Y)
	for i, ix := range sp.Rows {
		assert.Equal(t, dense.X[i], enc.Dense(ix))
	}
}
