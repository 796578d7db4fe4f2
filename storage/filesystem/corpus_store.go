package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/tagset/conllu"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/storage"
)

const Ext = ".conllu"

// CorpusStore reads a directory of CONLL-U files. The corpus name is the
// file name without the extension.
type CorpusStore struct {
	dir  string
	opts []conllu.Option
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

// NewCorpusStore creates a filesystem corpus store. opts are passed to the
// parser of every file.
func NewCorpusStore(dir string, opts ...conllu.Option) (*CorpusStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	return &CorpusStore{dir: dir, opts: opts}, nil
}

func (h *CorpusStore) names() ([]string, error) {
	files, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != Ext {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), Ext))
	}

	sort.Strings(names)
	return names, nil
}

// List parses every file to count sentences and tokens.
func (h *CorpusStore) List() ([]storage.CorpusInfo, error) {
	names, err := h.names()
	if err != nil {
		return nil, err
	}

	infos := make([]storage.CorpusInfo, 0, len(names))
	for _, name := range names {
		path := h.path(name)
		corpus, err := conllu.ReadFile(path, h.opts...)
		if err != nil {
			return nil, err
		}

		info := storage.CorpusInfo{
			Name:      name,
			Sentences: len(corpus),
			Tokens:    corpus.NumTokens(),
		}
		if fi, err := os.Stat(path); err == nil {
			info.Created = fi.ModTime()
		}
		infos = append(infos, info)
	}

	return infos, nil
}

func (h *CorpusStore) Read(name string) (sent.Corpus, error) {
	corpus, err := conllu.ReadFile(h.path(name), h.opts...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("corpus %q: %w", name, storage.ErrNotFound)
	}
	return corpus, err
}

func (h *CorpusStore) Write(name string, c sent.Corpus) (storage.CorpusInfo, error) {
	return storage.CorpusInfo{}, fmt.Errorf("read-only storage")
}

func (h *CorpusStore) path(name string) string {
	return filepath.Join(h.dir, name+Ext)
}
