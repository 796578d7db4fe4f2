package stat

import (
	"sort"

	sent "github.com/revelaction/tagset/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int
	TagFrequency          map[string]int
}

// TagCount is a tag and its number of tokens.
type TagCount struct {
	Tag   string
	Count int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		TagFrequency:         map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of corpus to the statistics. It can be
// called once per corpus file.
func (h *Handler) Aggregate(corpus sent.Corpus) {
	h.stats.NumSentences += len(corpus)
	for _, sentence := range corpus {
		h.stats.NumTokens += sentence.Len()
		h.stats.TokensPerSentenceDis[sentence.Len()]++
		for _, tag := range sentence.Tags {
			h.stats.TagFrequency[tag]++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}

// Tags returns the tag frequencies, most frequent first, ties by name.
func (s Stats) Tags() []TagCount {
	counts := make([]TagCount, 0, len(s.TagFrequency))
	for tag, n := range s.TagFrequency {
		counts = append(counts, TagCount{Tag: tag, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})
	return counts
}

// Estimate returns the bytes needed to hold a dense dataset of tokens rows
// of width one byte entries. The width grows with both vocabularies, so
// this is the practical limit of the one-hot encoding.
func Estimate(tokens, width int) int64 {
	return int64(tokens) * int64(width)
}
