package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/revelaction/tagset/conllu"
	"github.com/revelaction/tagset/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

func importCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import CONLL-U files into a sqlite corpus store",
		ArgsUsage: "<file.conllu>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "sqlite database `FILE`, created if missing",
				Required: true,
			},
		},
		Action: a.importCorpora,
	}
}

// corpusName is the file name without its extension.
func corpusName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (a *app) importCorpora(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("no file to import")
	}

	to := c.String("to")
	pool, err := a.pool.Open(to)
	if err != nil {
		return err
	}
	dst := zombiezen.NewCorpusStore(pool)

	bar := a.startBar(len(files), files)

	count := 0
	for _, path := range files {
		corpus, err := conllu.ReadFile(path, a.parseOptions()...)
		if err != nil {
			bar.Stop()
			return err
		}

		info, err := dst.Write(corpusName(path), corpus)
		if err != nil {
			bar.Stop()
			return fmt.Errorf("failed to write corpus %s: %w", path, err)
		}

		a.logger.Debug("corpus imported", "name", info.Name, "id", info.Id, "sentences", info.Sentences, "tokens", info.Tokens)
		count++
		bar.Incr()
	}
	bar.Stop()

	fmt.Fprintf(a.ui.Out, "Successfully imported %d corpora to %s\n", count, to)
	return nil
}
