package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/revelaction/tagset/dataset"
	"github.com/revelaction/tagset/feature"
	"github.com/revelaction/tagset/render"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/stat"
	"github.com/revelaction/tagset/vocab"
	"github.com/urfave/cli/v2"
)

func buildCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "encode corpora into a training set",
		ArgsUsage: "<corpus>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "vocab",
				Usage: "encode with the stored vocabularies `NAME` instead of building them",
			},
			&cli.StringFlag{
				Name:  "save-vocab",
				Usage: "store the built vocabularies as `NAME`",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("output format %v", render.SupportedFormats()),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file, stdout if not given",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of encoding goroutines",
			},
			&cli.StringFlag{
				Name:  "unknown",
				Usage: "unknown word policy, fail or slot",
			},
		},
		Action: a.build,
	}
}

func (a *app) build(c *cli.Context) error {
	cfg := a.cfg
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("out") {
		cfg.Output.Path = c.String("out")
	}
	if c.IsSet("workers") {
		cfg.Encode.Workers = c.Int("workers")
	}
	if c.IsSet("unknown") {
		cfg.Encode.Unknown = c.String("unknown")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	start := time.Now()
	corpus, err := a.readCorpus(c.Args().Slice())
	if err != nil {
		return err
	}
	a.logger.Info("corpus parsed", "sentences", len(corpus), "tokens", corpus.NumTokens())

	words, tags, err := a.vocabularies(c, corpus)
	if err != nil {
		return err
	}
	a.logger.Info("vocabularies", "words", words.Len(), "tags", tags.Len())

	enc := feature.NewEncoder(words, tags, feature.WithPolicy(cfg.Encode.Policy()))

	w, closeOut, err := a.output()
	if err != nil {
		return err
	}
	defer closeOut()

	if cfg.Output.Format == "sparse" {
		err = a.buildSparse(corpus, enc, w)
	} else {
		err = a.buildDense(c, corpus, enc, w)
	}
	if err != nil {
		return err
	}

	a.logger.Info("dataset written", "format", cfg.Output.Format, "width", enc.Width(), "duration", time.Since(start))
	logMetrics(a.logger)
	return nil
}

// vocabularies loads the stored vocabularies named by --vocab or builds
// them from corpus, saving them when --save-vocab is given.
func (a *app) vocabularies(c *cli.Context, corpus sent.Corpus) (*vocab.Vocabulary, *vocab.Vocabulary, error) {
	name := c.String("vocab")
	save := c.String("save-vocab")
	if name == "" && save == "" {
		return vocab.Words(corpus), vocab.Tags(corpus), nil
	}

	store, err := a.openVocabulary()
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	if name != "" {
		words, tags, err := store.Load(name)
		if err != nil {
			return nil, nil, fmt.Errorf("vocabulary %s: %w", name, err)
		}
		return words, tags, nil
	}

	words, tags := vocab.Words(corpus), vocab.Tags(corpus)
	if err := store.Save(save, words, tags); err != nil {
		return nil, nil, err
	}
	a.logger.Info("vocabularies saved", "name", save, "path", a.cfg.Vocab.Path)
	return words, tags, nil
}

func (a *app) buildDense(c *cli.Context, corpus sent.Corpus, enc *feature.Encoder, w io.Writer) error {
	size := stat.Estimate(corpus.NumTokens(), enc.Width())
	if limit := a.cfg.Encode.MaxDenseBytes; limit > 0 && size > limit {
		return fmt.Errorf("dense dataset needs %d bytes, over the %d limit: use the sparse format", size, limit)
	}

	r, err := render.New(a.cfg.Output.Format, w, enc)
	if err != nil {
		return err
	}

	bar := a.startBar(len(corpus), nil)
	ds, err := dataset.AssembleParallel(c.Context, corpus, enc, a.cfg.Encode.Workers,
		dataset.WithProgress(func(current, total int) { bar.Set(current) }))
	bar.Stop()
	if err != nil {
		return err
	}
	a.logger.Info("rows encoded", "rows", ds.Len(), "bytes", size)

	return r.Render(ds)
}

func (a *app) buildSparse(corpus sent.Corpus, enc *feature.Encoder, w io.Writer) error {
	bar := a.startBar(len(corpus), nil)
	sp, err := dataset.AssembleSparse(corpus, enc,
		dataset.WithProgress(func(current, total int) { bar.Set(current) }))
	bar.Stop()
	if err != nil {
		return err
	}
	a.logger.Info("rows encoded", "rows", sp.Len())

	return render.NewSparseRenderer(w).Render(sp)
}

// output returns the configured output writer and its close function.
func (a *app) output() (io.Writer, func(), error) {
	path := a.cfg.Output.Path
	if path == "" {
		return a.ui.Out, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("IO error: %w", err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			a.logger.Error("close output", "path", path, "err", err)
		}
	}, nil
}
