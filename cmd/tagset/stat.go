package main

import (
	"fmt"

	"github.com/revelaction/tagset/feature"
	"github.com/revelaction/tagset/stat"
	"github.com/revelaction/tagset/vocab"
	"github.com/urfave/cli/v2"
)

func statCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print corpus statistics",
		ArgsUsage: "<corpus>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "tags",
				Usage: "print the tag frequencies",
			},
		},
		Action: func(c *cli.Context) error {
			corpus, err := a.readCorpus(c.Args().Slice())
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()
			hdl.Aggregate(corpus)
			stats := hdl.Get()

			words, tags := vocab.Words(corpus), vocab.Tags(corpus)
			width := feature.NewEncoder(words, tags).Width()

			fmt.Fprintf(a.ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d\n", stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)
			fmt.Fprintf(a.ui.Out, "Num words %d, num tags %d, row width %d, dense size %d bytes\n", words.Len(), tags.Len(), width, stat.Estimate(stats.NumTokens, width))

			if c.Bool("tags") {
				for _, tc := range stats.Tags() {
					fmt.Fprintf(a.ui.Out, "%10s %8d\n", tc.Tag, tc.Count)
				}
			}
			return nil
		},
	}
}
