// Package bolt stores vocabularies in a bbolt file.
//
// Every vocabulary name is a top level bucket with two sub buckets, words
// and tags. Keys are big endian indexes, so a cursor walks the tokens in
// index order.
package bolt

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/revelaction/tagset/storage"
	"github.com/revelaction/tagset/vocab"
	bolt "go.etcd.io/bbolt"
)

var (
	wordsBucket = []byte("words")
	tagsBucket  = []byte("tags")
)

type VocabularyStore struct {
	db *bolt.DB
}

var _ storage.VocabularyRepository = (*VocabularyStore)(nil)

// Open opens or creates the bbolt file at path.
func Open(path string) (*VocabularyStore, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary store %s: %w", path, err)
	}

	return &VocabularyStore{db: db}, nil
}

func (s *VocabularyStore) Close() error {
	return s.db.Close()
}

func (s *VocabularyStore) Save(name string, words, tags *vocab.Vocabulary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		key := []byte(name)
		if tx.Bucket(key) != nil {
			if err := tx.DeleteBucket(key); err != nil {
				return err
			}
		}

		b, err := tx.CreateBucket(key)
		if err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", name, err)
		}

		if err := put(b, wordsBucket, words); err != nil {
			return err
		}
		return put(b, tagsBucket, tags)
	})
}

func put(parent *bolt.Bucket, name []byte, v *vocab.Vocabulary) error {
	b, err := parent.CreateBucket(name)
	if err != nil {
		return err
	}

	for i, tok := range v.Tokens() {
		if err := b.Put(itob(i), []byte(tok)); err != nil {
			return err
		}
	}
	return nil
}

func (s *VocabularyStore) Load(name string) (words, tags *vocab.Vocabulary, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("vocabulary %q: %w", name, storage.ErrNotFound)
		}

		if words, err = load(b, wordsBucket); err != nil {
			return err
		}
		tags, err = load(b, tagsBucket)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return words, tags, nil
}

func load(parent *bolt.Bucket, name []byte) (*vocab.Vocabulary, error) {
	b := parent.Bucket(name)
	if b == nil {
		return nil, fmt.Errorf("missing %s bucket", name)
	}

	v := vocab.New()
	c := b.Cursor()
	for k, val := c.First(); k != nil; k, val = c.Next() {
		// val is only valid inside the transaction, Add copies it
		if got, want := v.Add(string(val)), int(binary.BigEndian.Uint64(k)); got != want {
			return nil, fmt.Errorf("corrupt %s bucket: token %q at %d, stored at %d", name, val, got, want)
		}
	}
	return v, nil
}

func (s *VocabularyStore) Names() ([]string, error) {
	names := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
