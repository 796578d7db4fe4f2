// Package conllu reads CONLL-U treebank files into sentence records.
//
// Only the subset needed to build a tagger training set is consumed: the
// "# text = " and "# sent_id = " metadata, and the token rows. Multiword
// range rows (1-2) and empty nodes (8.1) are skipped.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rcrowley/go-metrics"
	sent "github.com/revelaction/tagset/sentence"
)

const (
	TextPrefix = "# text = "
	IDPrefix   = "# sent_id = "

	// Token row columns
	IDColumn       = 0
	FormColumn     = 1
	WordColumn     = 2 // canonical form (lemma)
	TagColumn      = 3
	FeaturesColumn = 4

	// MinColumns is the number of columns a token row needs: ID, form,
	// lemma and tag.
	MinColumns = TagColumn + 1

	maxLineSize = 4 * 1024 * 1024
)

var (
	ParseTimer      = metrics.NewRegisteredTimer("conllu.parse", nil)
	SentencesParsed = metrics.NewRegisteredMeter("conllu.sentences", nil)
)

// ErrMalformedRecord is matched by every *MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a token row with too few columns.
type MalformedRecordError struct {
	// 1-based line number in the source
	Line    int
	Columns int
	Content string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("conllu: line %d: malformed token row with %d columns, need at least %d: %q",
		e.Line, e.Columns, MinColumns, e.Content)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// Option configures a Parse call.
type Option func(*parser)

// WithSkipMalformed makes a malformed token row drop its sentence instead of
// aborting the parse. Token rows up to the next terminator are ignored and
// report is called with each error. report may be nil.
func WithSkipMalformed(report func(*MalformedRecordError)) Option {
	return func(p *parser) {
		p.skipMalformed = true
		p.report = report
	}
}

// parser holds the accumulators of one Parse call.
type parser struct {
	corpus sent.Corpus

	skipMalformed bool
	report        func(*MalformedRecordError)
	// set after a skipped malformed row until the next terminator
	skipping bool

	id       string
	text     string
	words    []string
	forms    []string
	tags     []string
	features []string
}

// Parse reads a CONLL-U stream and returns its sentences in source order.
//
// A sentence is finalized by the first non token line after at least one
// token row, or by the end of the stream. A token row with fewer than
// MinColumns columns aborts the parse with a *MalformedRecordError, unless
// WithSkipMalformed is given.
func Parse(r io.Reader, opts ...Option) (sent.Corpus, error) {
	p := &parser{corpus: sent.Corpus{}}
	for _, opt := range opts {
		opt(p)
	}

	var corpus sent.Corpus
	var err error
	ParseTimer.Time(func() {
		corpus, err = p.parse(r)
	})
	if err != nil {
		return nil, err
	}

	SentencesParsed.Mark(int64(len(corpus)))
	return corpus, nil
}

func (p *parser) parse(r io.Reader) (sent.Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		switch {
		case strings.HasPrefix(line, TextPrefix):
			// a new sentence starts even if the previous one was not terminated
			p.flush()
			p.text = strings.TrimPrefix(line, TextPrefix)

		case strings.HasPrefix(line, IDPrefix):
			p.flush()
			p.id = strings.TrimPrefix(line, IDPrefix)

		case len(line) > 0 && isDigit(line[0]):
			if p.skipping {
				continue
			}

			err := p.token(line, lineNum)
			var mre *MalformedRecordError
			if errors.As(err, &mre) && p.skipMalformed {
				p.drop()
				p.skipping = true
				if p.report != nil {
					p.report(mre)
				}
				continue
			}
			if err != nil {
				return nil, err
			}

		default:
			p.flush()
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("conllu: read line %d: %w", lineNum+1, err)
	}

	// No trailing blank line
	p.flush()

	return p.corpus, nil
}

func (p *parser) token(line string, lineNum int) error {
	cols := strings.Split(line, "\t")
	if len(cols) < MinColumns {
		return &MalformedRecordError{Line: lineNum, Columns: len(cols), Content: line}
	}

	// multiword token ranges and empty nodes are not part of the tag sequence
	if strings.ContainsAny(cols[IDColumn], "-.") {
		return nil
	}

	p.words = append(p.words, cols[WordColumn])
	p.forms = append(p.forms, cols[FormColumn])
	p.tags = append(p.tags, cols[TagColumn])

	feats := ""
	if len(cols) > FeaturesColumn {
		feats = strings.Join(cols[FeaturesColumn:], " ")
	}
	p.features = append(p.features, feats)

	return nil
}

// drop discards the accumulated sentence and its metadata.
func (p *parser) drop() {
	p.id, p.text = "", ""
	p.words, p.forms, p.tags, p.features = nil, nil, nil, nil
}

// flush appends the accumulated sentence to the corpus, if it has tokens.
// Metadata seen before any token is kept for the next sentence.
func (p *parser) flush() {
	p.skipping = false
	if len(p.words) == 0 {
		return
	}

	p.corpus = append(p.corpus, sent.Sentence{
		ID:       p.id,
		Text:     p.text,
		Words:    p.words,
		Forms:    p.forms,
		Tags:     p.tags,
		Features: p.features,
	})

	p.drop()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ReadFile parses the CONLL-U file at path.
func ReadFile(path string, opts ...Option) (sent.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	corpus, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return corpus, nil
}
