package storage

import (
	"errors"
	"time"

	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/vocab"
)

// ErrNotFound is returned when a named corpus or vocabulary does not exist.
var ErrNotFound = errors.New("not found")

// CorpusInfo is the metadata of a stored corpus.
type CorpusInfo struct {
	// Id is empty for stores without identifiers (filesystem)
	Id        string
	Name      string
	Sentences int
	Tokens    int
	Created   time.Time
}

// CorpusReader defines read operations for corpus storage
type CorpusReader interface {
	// List returns the metadata of all corpora, sorted by name.
	List() ([]CorpusInfo, error)

	// Read returns the sentences of a corpus by name
	Read(name string) (sent.Corpus, error)
}

// CorpusWriter defines write operations for corpus storage
type CorpusWriter interface {
	// Write persists a corpus under name
	Write(name string, c sent.Corpus) (CorpusInfo, error)
}

// CorpusRepository combines read and write operations
type CorpusRepository interface {
	CorpusReader
	CorpusWriter
}

// VocabularyRepository persists the word and tag vocabularies of a training
// run, so a dev or test split can be encoded with the same indexes.
type VocabularyRepository interface {
	// Save stores both vocabularies under name, replacing existing ones
	Save(name string, words, tags *vocab.Vocabulary) error

	// Load returns the vocabularies stored under name, in index order
	Load(name string) (words, tags *vocab.Vocabulary, err error)

	// Names returns the stored vocabulary names, sorted
	Names() ([]string, error)
}
