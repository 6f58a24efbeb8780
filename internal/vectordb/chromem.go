package vectordb

import (
	"context"
	"fmt"
	"log"

	chromem "github.com/philippgille/chromem-go"

	"github.com/recall-labs/recall/internal/embeddings"
	"github.com/recall-labs/recall/internal/metadata"
)

// collectionKey is an internal metadata tag stamped on every stored document
// so that best-effort deletion can address a whole collection through a
// where filter. It is stripped from query results.
const collectionKey = "_collection"

// ChromemProvider implements Provider on top of chromem-go. One chromem DB
// holds all collections; with a persistent DB every upsert is written
// through to disk.
type ChromemProvider struct {
	db        *chromem.DB
	embedder  embeddings.Embedder
	embedFunc chromem.EmbeddingFunc
}

var _ Provider = (*ChromemProvider)(nil)

// NewPersistentProvider opens (or creates) a disk-backed chromem DB rooted
// at path.
func NewPersistentProvider(path string, embedder embeddings.Embedder) (*ChromemProvider, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector db at %s: %w", path, err)
	}
	return &ChromemProvider{
		db:        db,
		embedder:  embedder,
		embedFunc: embeddings.ToChromemFunc(embedder),
	}, nil
}

// NewMemoryProvider creates an in-memory provider (useful for testing).
func NewMemoryProvider(embedder embeddings.Embedder) *ChromemProvider {
	return &ChromemProvider{
		db:        chromem.NewDB(),
		embedder:  embedder,
		embedFunc: embeddings.ToChromemFunc(embedder),
	}
}

func (p *ChromemProvider) Collection(name string) (Index, error) {
	// Existence is established eagerly so that configuration problems
	// surface here rather than on the first upsert.
	if _, err := p.db.GetOrCreateCollection(name, nil, p.embedFunc); err != nil {
		return nil, fmt.Errorf("opening collection %q: %w", name, err)
	}
	return &chromemIndex{provider: p, name: name}, nil
}

func (p *ChromemProvider) HasCollection(name string) bool {
	return p.db.GetCollection(name, p.embedFunc) != nil
}

// chromemIndex is one collection's view of the shared chromem DB. The
// collection handle is re-resolved per operation so the index stays valid
// across a DeleteAll that drops and recreates the underlying collection.
type chromemIndex struct {
	provider *ChromemProvider
	name     string
}

var _ Index = (*chromemIndex)(nil)

func (x *chromemIndex) collection() (*chromem.Collection, error) {
	return x.provider.db.GetOrCreateCollection(x.name, nil, x.provider.embedFunc)
}

func (x *chromemIndex) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	col, err := x.collection()
	if err != nil {
		return err
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		flat := metadata.Flatten(doc.Metadata)
		flat[collectionKey] = x.name
		chromemDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: flat,
		}
	}

	if err := col.AddDocuments(ctx, chromemDocs, 1); err != nil {
		return fmt.Errorf("indexing %d documents in %q: %w", len(docs), x.name, err)
	}
	return nil
}

func (x *chromemIndex) Query(ctx context.Context, text string, topK int) ([]Hit, error) {
	if topK <= 0 {
		topK = 10
	}

	col, err := x.collection()
	if err != nil {
		return nil, err
	}

	// chromem-go requires nResults <= collection size.
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := col.Query(ctx, text, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %q: %w", x.name, err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		meta := metadata.Unflatten(r.Metadata)
		delete(meta, collectionKey)
		hits[i] = Hit{
			ID:         r.ID,
			Content:    r.Content,
			Metadata:   meta,
			Rank:       i,
			Similarity: r.Similarity,
		}
	}
	return hits, nil
}

// DeleteAll drops the collection. If the bulk drop is refused it degrades to
// deleting the collection's documents one filter-match at a time; either
// path leaves the collection logically empty.
func (x *chromemIndex) DeleteAll(ctx context.Context) error {
	err := x.provider.db.DeleteCollection(x.name)
	if err == nil {
		return nil
	}
	log.Printf("vectordb: dropping collection %q failed (%v), falling back to per-document deletion", x.name, err)

	col, err := x.collection()
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, map[string]string{collectionKey: x.name}, nil); err != nil {
		return fmt.Errorf("clearing collection %q: %w", x.name, err)
	}
	return nil
}

func (x *chromemIndex) Count() int {
	col := x.provider.db.GetCollection(x.name, x.provider.embedFunc)
	if col == nil {
		return 0
	}
	return col.Count()
}
