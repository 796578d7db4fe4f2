package main

import (
	"fmt"

	"github.com/revelaction/tagset/vocab"
	"github.com/urfave/cli/v2"
)

func vocabCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "vocab",
		Usage: "build, list and show stored vocabularies",
		Subcommands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "build the vocabularies of corpora and store them",
				ArgsUsage: "<name> <corpus>...",
				Action:    a.vocabBuild,
			},
			{
				Name:   "ls",
				Usage:  "list the stored vocabularies",
				Action: a.vocabList,
			},
			{
				Name:      "show",
				Usage:     "print a stored vocabulary in index order",
				ArgsUsage: "<name>",
				Action:    a.vocabShow,
			},
		},
	}
}

func (a *app) vocabBuild(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: vocab build <name> <corpus>...")
	}

	name := c.Args().First()
	corpus, err := a.readCorpus(c.Args().Tail())
	if err != nil {
		return err
	}

	store, err := a.openVocabulary()
	if err != nil {
		return err
	}
	defer store.Close()

	words, tags := vocab.Words(corpus), vocab.Tags(corpus)
	if err := store.Save(name, words, tags); err != nil {
		return err
	}

	fmt.Fprintf(a.ui.Out, "Saved vocabulary %s: %d words, %d tags\n", name, words.Len(), tags.Len())
	return nil
}

func (a *app) vocabList(c *cli.Context) error {
	store, err := a.openVocabulary()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(a.ui.Out, name)
	}
	return nil
}

func (a *app) vocabShow(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("usage: vocab show <name>")
	}

	store, err := a.openVocabulary()
	if err != nil {
		return err
	}
	defer store.Close()

	words, tags, err := store.Load(name)
	if err != nil {
		return fmt.Errorf("vocabulary %s: %w", name, err)
	}

	for i, w := range words.Tokens() {
		fmt.Fprintf(a.ui.Out, "w %6d %s\n", i, w)
	}
	for i, t := range tags.Tokens() {
		fmt.Fprintf(a.ui.Out, "p %6d %s\n", i, t)
	}
	fmt.Fprintf(a.ui.Out, "p %6d %s\n", tags.Len(), vocab.StartTag)
	return nil
}
