package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/revelaction/tagset/config"
	"github.com/urfave/cli/v2"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// app holds what the commands share: streams, configuration and the
// stores opened during the run.
type app struct {
	ui     UI
	cfg    *config.Config
	logger *slog.Logger
	pool   *Pool

	quiet bool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ui).RunContext(ctx, os.Args); err != nil {
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "tagset: %v\n", err)
}

func newApp(ui UI) *cli.App {
	a := &app{ui: ui, pool: &Pool{}}

	return &cli.App{
		Name:      "tagset",
		Usage:     "build one-hot training sets for part of speech tagging from CONLL-U corpora",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus",
				Aliases: []string{"c"},
				Usage:   "corpus store: a directory of .conllu files or a sqlite file",
			},
			&cli.BoolFlag{
				Name:  "skip-malformed",
				Usage: "drop sentences with malformed token rows instead of failing",
			},
			&cli.StringFlag{
				Name:  "vocab-db",
				Usage: "bbolt vocabulary store",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "no progress bars",
			},
		},
		Before: a.setup,
		After: func(c *cli.Context) error {
			return a.pool.Close()
		},
		Commands: []*cli.Command{
			buildCommand(a),
			importCommand(a),
			vocabCommand(a),
			lsCommand(a),
			statCommand(a),
			inspectCommand(a),
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(a.ui)
				},
			},
		},
	}
}

// setup loads the configuration, applies the global flags over it and
// creates the logger.
func (a *app) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.IsSet("corpus") {
		cfg.Corpus.Path = c.String("corpus")
	}
	if c.IsSet("skip-malformed") {
		cfg.Corpus.SkipMalformed = c.Bool("skip-malformed")
	}
	if c.IsSet("vocab-db") {
		cfg.Vocab.Path = c.String("vocab-db")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}

	a.cfg = cfg
	a.quiet = c.Bool("quiet")
	a.logger = newLogger(cfg.Log, a.ui.Err)
	return nil
}
