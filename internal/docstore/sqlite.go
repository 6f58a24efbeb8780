package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/recall-labs/recall/internal/metadata"
)

// SQLiteStore is the durable Store implementation backed by SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// Open creates or opens a SQLite-backed store at the given path.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}

	s := &SQLiteStore{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS parent_chunks (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    content TEXT NOT NULL,
    metadata TEXT NOT NULL DEFAULT '{}',
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_parent_chunks_collection ON parent_chunks(collection);
`

func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata for %s: %w", rec.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO parent_chunks (id, collection, content, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collection = excluded.collection,
			content    = excluded.content,
			metadata   = excluded.metadata,
			updated_at = datetime('now')`,
		rec.ID, rec.Collection, rec.Content, string(meta))
	if err != nil {
		return fmt.Errorf("storing parent chunk %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	var meta string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, collection, content, metadata FROM parent_chunks WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Collection, &rec.Content, &meta)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading parent chunk %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(meta), &rec.Metadata); err != nil {
		return Record{}, fmt.Errorf("unmarshalling metadata for %s: %w", id, err)
	}
	if rec.Metadata == nil {
		rec.Metadata = metadata.Map{}
	}
	return rec, nil
}

func (s *SQLiteStore) DeleteCollection(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM parent_chunks WHERE collection = ?`, collection)
	if err != nil {
		return fmt.Errorf("clearing collection %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) CountCollection(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parent_chunks WHERE collection = ?`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting collection %s: %w", collection, err)
	}
	return n, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM parent_chunks`); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
