// Package vectordb stores child-chunk embeddings and answers cosine
// similarity queries, one independent index per named collection.
package vectordb

import (
	"context"

	"github.com/recall-labs/recall/internal/metadata"
)

// Document is one child chunk to be embedded and indexed.
type Document struct {
	ID       string
	Content  string
	Metadata metadata.Map
}

// Hit is one ranked query result. Rank is zero-based within the result list;
// Similarity is the cosine similarity to the query.
type Hit struct {
	ID         string
	Content    string
	Metadata   metadata.Map
	Rank       int
	Similarity float32
}

// Index is one collection's vector index. Embeddings are computed internally
// from document content; the similarity metric is cosine for the lifetime of
// the collection.
type Index interface {
	// Upsert embeds and stores documents, replacing any existing entries
	// with the same ids.
	Upsert(ctx context.Context, docs []Document) error

	// Query returns up to topK hits ranked by descending cosine similarity.
	Query(ctx context.Context, text string, topK int) ([]Hit, error)

	// DeleteAll removes every document in the collection.
	DeleteAll(ctx context.Context) error

	// Count reports the number of indexed documents.
	Count() int
}

// Provider opens named collection indexes.
type Provider interface {
	// Collection returns the index for name, creating it if needed.
	Collection(name string) (Index, error)

	// HasCollection reports whether a collection already exists. Searching
	// a collection that was never ingested into is a no-result case, not an
	// error, so callers check this before opening one.
	HasCollection(name string) bool
}
