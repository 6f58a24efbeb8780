// Package docstore provides the durable store for parent chunks. Child
// chunks live in the vector index; at search time their parent's full
// content is resolved from here.
package docstore

import (
	"context"
	"errors"

	"github.com/recall-labs/recall/internal/metadata"
)

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = errors.New("docstore: record not found")

// Record is one stored parent chunk. Records are written once per ingestion
// and never mutated in place; re-ingesting a source document overwrites its
// records by id.
type Record struct {
	ID         string
	Collection string
	Content    string
	Metadata   metadata.Map
}

// Store is a durable key-value store for parent chunks. Writes are upserts
// keyed by id. The store survives process restarts.
type Store interface {
	// Put inserts or replaces a record.
	Put(ctx context.Context, rec Record) error

	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// DeleteCollection removes every record belonging to a collection.
	DeleteCollection(ctx context.Context, collection string) error

	// CountCollection reports how many records a collection holds.
	CountCollection(ctx context.Context, collection string) (int, error)

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
