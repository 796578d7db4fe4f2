package main

import (
	"github.com/revelaction/tagset/feature"
	"github.com/revelaction/tagset/inspect"
	"github.com/revelaction/tagset/vocab"
	"github.com/urfave/cli/v2"
)

func inspectCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "show the encoding of the sentences interactively",
		ArgsUsage: "<corpus>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "vocab",
				Usage: "encode with the stored vocabularies `NAME`",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "do not color labels",
			},
		},
		Action: func(c *cli.Context) error {
			corpus, err := a.readCorpus(c.Args().Slice())
			if err != nil {
				return err
			}

			words, tags := vocab.Words(corpus), vocab.Tags(corpus)
			if name := c.String("vocab"); name != "" {
				store, err := a.openVocabulary()
				if err != nil {
					return err
				}
				words, tags, err = store.Load(name)
				store.Close()
				if err != nil {
					return err
				}
			}

			enc := feature.NewEncoder(words, tags, feature.WithPolicy(a.cfg.Encode.Policy()))
			hdl := inspect.NewHandler(corpus, enc, a.ui.Out)
			hdl.HasColor = !c.Bool("no-color")
			return hdl.Run()
		},
	}
}
