package dataset

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rcrowley/go-metrics"
	"github.com/revelaction/tagset/feature"
	sent "github.com/revelaction/tagset/sentence"
	"golang.org/x/sync/errgroup"
)

var (
	AssembleTimer = metrics.NewRegisteredTimer("dataset.assemble", nil)
	RowsEncoded   = metrics.NewRegisteredMeter("dataset.rows", nil)
)

// Dataset is the training set: one row of X per token and its tag in Y, in
// corpus order.
type Dataset struct {
	X feature.Matrix `json:"x"`
	Y []string       `json:"y"`
}

func (d Dataset) Len() int {
	return len(d.Y)
}

// Width returns the row width, 0 for an empty Dataset.
func (d Dataset) Width() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Sparse is the Dataset with each row reduced to its active indexes.
type Sparse struct {
	Rows []feature.Index `json:"rows"`
	Y    []string        `json:"y"`
}

func (s Sparse) Len() int {
	return len(s.Y)
}

// Option configures an assembly.
type Option func(*options)

type options struct {
	progress func(current, total int)
}

// WithProgress registers a callback invoked after each encoded sentence.
// With AssembleParallel it is called from several goroutines.
func WithProgress(cb func(current, total int)) Option {
	return func(o *options) {
		o.progress = cb
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Assemble encodes every sentence of corpus in order and concatenates the
// rows. The first error aborts the assembly and no Dataset is returned.
func Assemble(corpus sent.Corpus, enc *feature.Encoder, opts ...Option) (Dataset, error) {
	o := newOptions(opts)

	var ds Dataset
	var err error
	AssembleTimer.Time(func() {
		ds, err = assemble(corpus, enc, o)
	})
	if err != nil {
		return Dataset{}, err
	}

	RowsEncoded.Mark(int64(ds.Len()))
	return ds, nil
}

func assemble(corpus sent.Corpus, enc *feature.Encoder, o *options) (Dataset, error) {
	n := corpus.NumTokens()
	ds := Dataset{X: make(feature.Matrix, 0, n), Y: make([]string, 0, n)}

	for i, s := range corpus {
		m, labels, err := enc.Encode(s)
		if err != nil {
			return Dataset{}, fmt.Errorf("sentence %d: %w", i, err)
		}

		ds.X = append(ds.X, m...)
		ds.Y = append(ds.Y, labels...)

		if o.progress != nil {
			o.progress(i+1, len(corpus))
		}
	}

	return ds, nil
}

type part struct {
	m      feature.Matrix
	labels []string
}

// AssembleParallel produces the same Dataset as Assemble, encoding sentences
// on up to workers goroutines. Sentences are independent, the results are
// put back in corpus order.
func AssembleParallel(ctx context.Context, corpus sent.Corpus, enc *feature.Encoder, workers int, opts ...Option) (Dataset, error) {
	if workers < 1 {
		workers = 1
	}
	o := newOptions(opts)

	var ds Dataset
	var err error
	AssembleTimer.Time(func() {
		ds, err = assembleParallel(ctx, corpus, enc, workers, o)
	})
	if err != nil {
		return Dataset{}, err
	}

	RowsEncoded.Mark(int64(ds.Len()))
	return ds, nil
}

func assembleParallel(ctx context.Context, corpus sent.Corpus, enc *feature.Encoder, workers int, o *options) (Dataset, error) {
	parts := make([]part, len(corpus))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	for i := range corpus {
		if gctx.Err() != nil {
			break
		}

		i := i // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			m, labels, err := enc.Encode(corpus[i])
			if err != nil {
				return fmt.Errorf("sentence %d: %w", i, err)
			}
			parts[i] = part{m: m, labels: labels}

			if o.progress != nil {
				o.progress(int(done.Add(1)), len(corpus))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}

	// the loop may have stopped on a cancelled parent context
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	n := corpus.NumTokens()
	ds := Dataset{X: make(feature.Matrix, 0, n), Y: make([]string, 0, n)}
	for _, p := range parts {
		ds.X = append(ds.X, p.m...)
		ds.Y = append(ds.Y, p.labels...)
	}

	return ds, nil
}

// AssembleSparse is Assemble without materializing one-hot rows. Its
// memory use does not grow with the vocabulary sizes.
func AssembleSparse(corpus sent.Corpus, enc *feature.Encoder, opts ...Option) (Sparse, error) {
	o := newOptions(opts)

	n := corpus.NumTokens()
	sp := Sparse{Rows: make([]feature.Index, 0, n), Y: make([]string, 0, n)}

	for i, s := range corpus {
		idx, labels, err := enc.Sparse(s)
		if err != nil {
			return Sparse{}, fmt.Errorf("sentence %d: %w", i, err)
		}

		sp.Rows = append(sp.Rows, idx...)
		sp.Y = append(sp.Y, labels...)

		if o.progress != nil {
			o.progress(i+1, len(corpus))
		}
	}

	RowsEncoded.Mark(int64(sp.Len()))
	return sp, nil
}
