package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func lsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the corpora of the corpus store",
		Action: func(c *cli.Context) error {
			repo, err := NewCorpusRepository(a.pool, a.cfg.Corpus.Path, a.parseOptions()...)
			if err != nil {
				return err
			}

			infos, err := repo.List()
			if err != nil {
				return err
			}

			for _, info := range infos {
				fmt.Fprintf(a.ui.Out, "📖 %-30s %8d sentences %10d tokens\n", info.Name, info.Sentences, info.Tokens)
			}
			return nil
		},
	}
}
