package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/tagset/conllu"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/storage"
	"github.com/revelaction/tagset/storage/bolt"
	"github.com/revelaction/tagset/storage/filesystem"
	"github.com/revelaction/tagset/storage/sqlite/zombiezen"
)

func NewCorpusRepository(p *Pool, path string, opts ...conllu.Option) (storage.CorpusRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewCorpusStore(path, opts...)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewCorpusStore(pool), nil
}

// parseOptions returns the parser options of the configuration. Skipped
// sentences are logged.
func (a *app) parseOptions() []conllu.Option {
	if !a.cfg.Corpus.SkipMalformed {
		return nil
	}

	return []conllu.Option{conllu.WithSkipMalformed(func(e *conllu.MalformedRecordError) {
		a.logger.Warn("sentence skipped", "line", e.Line, "columns", e.Columns, "content", e.Content)
	})}
}

func (a *app) openVocabulary() (*bolt.VocabularyStore, error) {
	return bolt.Open(a.cfg.Vocab.Path)
}

// isFile reports whether source names a .conllu file rather than a corpus
// in the store.
func isFile(source string) bool {
	if !strings.EqualFold(filepath.Ext(source), filesystem.Ext) {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && !info.IsDir()
}

// readCorpus reads the sources in order and concatenates their sentences. A
// source is a .conllu file or the name of a corpus in the corpus store.
func (a *app) readCorpus(sources []string) (sent.Corpus, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no corpus given")
	}

	var repo storage.CorpusReader
	var corpus sent.Corpus

	bar := a.startBar(len(sources), sources)
	defer bar.Stop()

	for _, source := range sources {
		var c sent.Corpus
		var err error

		if isFile(source) {
			c, err = conllu.ReadFile(source, a.parseOptions()...)
		} else {
			if repo == nil {
				repo, err = NewCorpusRepository(a.pool, a.cfg.Corpus.Path, a.parseOptions()...)
				if err != nil {
					return nil, err
				}
			}
			c, err = repo.Read(source)
			if err != nil {
				err = fmt.Errorf("corpus %s: %w", source, err)
			}
		}
		if err != nil {
			return nil, err
		}

		a.logger.Debug("corpus read", "source", source, "sentences", len(c), "tokens", c.NumTokens())
		corpus = append(corpus, c...)
		bar.Incr()
	}

	return corpus, nil
}
