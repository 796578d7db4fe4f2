// Package inspect provides an interactive prompt showing how the sentences
// of a corpus are encoded.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/revelaction/tagset/feature"
	"github.com/revelaction/tagset/render"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/vocab"
)

const (
	completionThreshold = 2

	wordPrefix = feature.WordPrefix
	tagPrefix  = feature.TagPrefix
)

var ErrOutOfRange = errors.New("sentence index out of range")

type Handler struct {
	Corpus  sent.Corpus
	Encoder *feature.Encoder
	Out     io.Writer

	HasColor bool
}

func NewHandler(c sent.Corpus, enc *feature.Encoder, out io.Writer) *Handler {
	return &Handler{
		Corpus:   c,
		Encoder:  enc,
		Out:      out,
		HasColor: true,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintf(h.Out, "🔑 %d sentences. <n>: show sentence, w:<word> or p:<tag>: index, Ctrl+X: toggle color, 🔧 quit\n", len(h.Corpus))

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("tagset inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.HasColor = !h.HasColor
					fmt.Fprintf(h.Out, "Color set to %t\n", h.HasColor)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}

		if in == "" {
			continue
		}

		history = append(history, in)

		out, err := h.Eval(in)
		if err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
			continue
		}

		fmt.Fprint(h.Out, out)
	}
}

// Eval runs one prompt line: a sentence index or a prefixed vocabulary
// token.
func (h *Handler) Eval(in string) (string, error) {
	switch {
	case strings.HasPrefix(in, wordPrefix), strings.HasPrefix(in, tagPrefix):
		return h.Lookup(in)
	}

	i, err := strconv.Atoi(in)
	if err != nil {
		return "", fmt.Errorf("not a sentence index: %q", in)
	}

	return h.Describe(i)
}

// Lookup returns the column of a "w:" word or "p:" tag token.
func (h *Handler) Lookup(in string) (string, error) {
	enc := h.Encoder

	if token, ok := strings.CutPrefix(in, wordPrefix); ok {
		idx, found := enc.Words().Index(token)
		if !found {
			return "", fmt.Errorf("%w: %s %q", feature.ErrUnknownToken, feature.KindWord, token)
		}
		return fmt.Sprintf("%s%s column %d\n", wordPrefix, token, idx), nil
	}

	token := strings.TrimPrefix(in, tagPrefix)
	if token == "" {
		return fmt.Sprintf("%s%s column %d\n", tagPrefix, vocab.StartTag, enc.WordWidth()+enc.StartIndex()), nil
	}

	idx, found := enc.Tags().Index(token)
	if !found {
		return "", fmt.Errorf("%w: %s %q", feature.ErrUnknownToken, feature.KindTag, token)
	}
	return fmt.Sprintf("%s%s column %d\n", tagPrefix, token, enc.WordWidth()+idx), nil
}

// Describe returns one line per token of sentence i: surface form, word
// and its index, previous tag and its index, end flag and label.
func (h *Handler) Describe(i int) (string, error) {
	if i < 0 || i >= len(h.Corpus) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, len(h.Corpus))
	}

	s := h.Corpus[i]
	rows, labels, err := h.Encoder.Sparse(s)
	if err != nil {
		return "", fmt.Errorf("sentence %d: %w", i, err)
	}

	var b strings.Builder
	if s.ID != "" {
		fmt.Fprintf(&b, "# sent_id = %s\n", s.ID)
	}
	if s.Text != "" {
		fmt.Fprintf(&b, "# text = %s\n", s.Text)
	}

	for j, ix := range rows {
		form := s.Words[j]
		if len(s.Forms) > j {
			form = s.Forms[j]
		}

		word := h.word(ix.Word)
		prev := h.prev(ix.PrevTag)
		label := labels[j]
		if h.HasColor {
			label = render.Yellow + label + render.Off
			if ix.PrevTag == h.Encoder.StartIndex() {
				prev = render.Gray + prev + render.Off
			}
		}

		end := 0
		if ix.End {
			end = 1
		}

		fmt.Fprintf(&b, "%3d %20q %20q %6d %10s %4d %2d %s\n", j, form, word, ix.Word, prev, ix.PrevTag, end, label)
	}

	return b.String(), nil
}

func (h *Handler) word(idx int) string {
	if idx == h.Encoder.UnknownIndex() {
		return feature.UnknownWord
	}

	return h.Encoder.Words().Token(idx)
}

func (h *Handler) prev(idx int) string {
	if idx == h.Encoder.StartIndex() {
		return vocab.StartTag
	}

	return h.Encoder.Tags().Token(idx)
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		s := []prompt.Suggest{}
		word := in.GetWordBeforeCursor()

		if len(word) < completionThreshold {
			return s
		}

		if token, ok := strings.CutPrefix(word, wordPrefix); ok {
			for _, w := range h.Encoder.Words().Tokens() {
				if strings.HasPrefix(w, token) {
					s = append(s, prompt.Suggest{Text: wordPrefix + w, Description: "word"})
				}
			}
			return s
		}

		if token, ok := strings.CutPrefix(word, tagPrefix); ok {
			for _, t := range h.Encoder.Tags().Tokens() {
				if strings.HasPrefix(t, token) {
					s = append(s, prompt.Suggest{Text: tagPrefix + t, Description: "tag"})
				}
			}
		}

		return s
	}
}
