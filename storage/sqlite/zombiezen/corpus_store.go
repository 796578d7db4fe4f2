package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type CorpusStore struct {
	pool *sqlitex.Pool
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

func NewCorpusStore(pool *sqlitex.Pool) *CorpusStore {
	return &CorpusStore{pool: pool}
}

func (h *CorpusStore) List() ([]storage.CorpusInfo, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	infos := []storage.CorpusInfo{}
	err = sqlitex.Execute(conn, "SELECT id, name, sentences, tokens, created_at FROM corpora ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			infos = append(infos, storage.CorpusInfo{
				Id:        stmt.ColumnText(0),
				Name:      stmt.ColumnText(1),
				Sentences: stmt.ColumnInt(2),
				Tokens:    stmt.ColumnInt(3),
				Created:   time.Unix(stmt.ColumnInt64(4), 0).UTC(),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func (h *CorpusStore) Read(name string) (sent.Corpus, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	id, err := corpusID(conn, name)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("corpus %q: %w", name, storage.ErrNotFound)
	}

	corpus := sent.Corpus{}
	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE corpus_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var s sent.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &s); err != nil {
				return fmt.Errorf("JSON decoding error: %w", err)
			}
			corpus = append(corpus, s)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return corpus, nil
}

// Write stores c under name in one transaction. A corpus with the same name
// is replaced.
func (h *CorpusStore) Write(name string, c sent.Corpus) (info storage.CorpusInfo, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return storage.CorpusInfo{}, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	if err = deleteCorpus(conn, name); err != nil {
		return storage.CorpusInfo{}, err
	}

	info = storage.CorpusInfo{
		Id:        uuid.NewString(),
		Name:      name,
		Sentences: len(c),
		Tokens:    c.NumTokens(),
		Created:   time.Now().UTC().Truncate(time.Second),
	}

	err = sqlitex.Execute(conn, "INSERT INTO corpora (id, name, sentences, tokens, created_at) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{info.Id, info.Name, info.Sentences, info.Tokens, info.Created.Unix()},
	})
	if err != nil {
		return storage.CorpusInfo{}, fmt.Errorf("failed to insert corpus: %w", err)
	}

	for pos, s := range c {
		data, marshalErr := json.Marshal(s)
		if marshalErr != nil {
			err = marshalErr
			return storage.CorpusInfo{}, err
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (corpus_id, position, sent_id, text, data) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{info.Id, pos, s.ID, s.Text, string(data)},
		})
		if err != nil {
			return storage.CorpusInfo{}, fmt.Errorf("failed to insert sentence %d: %w", pos, err)
		}
	}

	return info, nil
}

func corpusID(conn *sqlite.Conn, name string) (string, error) {
	id := ""
	err := sqlitex.Execute(conn, "SELECT id FROM corpora WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			id = stmt.ColumnText(0)
			return nil
		},
	})
	return id, err
}

func deleteCorpus(conn *sqlite.Conn, name string) error {
	id, err := corpusID(conn, name)
	if err != nil || id == "" {
		return err
	}

	err = sqlitex.Execute(conn, "DELETE FROM sentences WHERE corpus_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
	})
	if err != nil {
		return fmt.Errorf("failed to delete sentences: %w", err)
	}

	return sqlitex.Execute(conn, "DELETE FROM corpora WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
	})
}
