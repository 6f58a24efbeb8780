// Package engine orchestrates the retrieval pipeline: ingestion splits
// documents into parent and child chunks, stores parents durably and indexes
// children; search fans out expanded query variants over the vector index,
// fuses the ranked lists and resolves hits back to their parent's full
// content.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/recall-labs/recall/internal/docstore"
	"github.com/recall-labs/recall/internal/embeddings"
	"github.com/recall-labs/recall/internal/fusion"
	"github.com/recall-labs/recall/internal/metadata"
	"github.com/recall-labs/recall/internal/splitter"
	"github.com/recall-labs/recall/internal/vectordb"
)

// Default chunking profiles. Parents are large for answer context, children
// small for precise similarity matching.
const (
	DefaultParentSize    = 2000
	DefaultParentOverlap = 200
	DefaultChildSize     = 400
	DefaultChildOverlap  = 50

	// DefaultExpansions is how many query reformulations are requested in
	// addition to the original query.
	DefaultExpansions = 3

	// DefaultTopK is the result count used when the caller passes none.
	DefaultTopK = 10
)

var (
	// ErrEmptyInput is returned when there is no text to ingest.
	ErrEmptyInput = errors.New("engine: empty input text")

	// ErrEmptyQuery is returned for blank search queries.
	ErrEmptyQuery = errors.New("engine: empty query")

	// ErrNoCollection is returned when an operation names no collection.
	ErrNoCollection = errors.New("engine: collection name required")
)

// Provenance records which tier a search result was resolved from.
type Provenance string

const (
	ProvenanceParent Provenance = "parent"
	ProvenanceChild  Provenance = "child"
)

// SearchResult is one retrieval hit. Score is the fused reciprocal-rank
// score: meaningful for ordering within one search call only, never
// comparable across calls.
type SearchResult struct {
	Content    string       `json:"content"`
	Metadata   metadata.Map `json:"metadata"`
	Score      float64      `json:"score"`
	Provenance Provenance   `json:"provenance"`
}

// IngestResult reports what one ingestion produced.
type IngestResult struct {
	SourceID string `json:"source_id"`
	Parents  int    `json:"parents"`
	Children int    `json:"children"`
}

// QueryExpander produces query reformulations. Expansion is best-effort;
// implementations must return at least the original query.
type QueryExpander interface {
	Expand(ctx context.Context, query string, n int) []string
}

// Engine is the retrieval coordinator. All collaborators are injected; the
// engine holds no ambient state beyond the one-time embedder readiness probe.
type Engine struct {
	embedder embeddings.Embedder
	vectors  vectordb.Provider
	parents  docstore.Store
	expander QueryExpander

	parentSplit *splitter.Splitter
	childSplit  *splitter.Splitter
	expansions  int
	fusionK     int

	readyOnce sync.Once
	readyErr  error
}

// Option configures an Engine.
type Option func(*Engine)

// WithExpander sets the query expander. Without one, searches run the
// original query only.
func WithExpander(x QueryExpander) Option {
	return func(e *Engine) { e.expander = x }
}

// WithParentProfile sets the parent chunking size and overlap.
func WithParentProfile(size, overlap int) Option {
	return func(e *Engine) { e.parentSplit = splitter.New(size, overlap) }
}

// WithChildProfile sets the child chunking size and overlap.
func WithChildProfile(size, overlap int) Option {
	return func(e *Engine) { e.childSplit = splitter.New(size, overlap) }
}

// WithExpansions sets how many query reformulations are requested.
func WithExpansions(n int) Option {
	return func(e *Engine) { e.expansions = n }
}

// WithFusionK sets the reciprocal-rank fusion constant.
func WithFusionK(k int) Option {
	return func(e *Engine) { e.fusionK = k }
}

// New creates an Engine. The embedder, vector index provider and parent
// store are required.
func New(embedder embeddings.Embedder, vectors vectordb.Provider, parents docstore.Store, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, errors.New("engine: embedder is required")
	}
	if vectors == nil {
		return nil, errors.New("engine: vector index provider is required")
	}
	if parents == nil {
		return nil, errors.New("engine: parent document store is required")
	}

	e := &Engine{
		embedder:    embedder,
		vectors:     vectors,
		parents:     parents,
		parentSplit: splitter.New(DefaultParentSize, DefaultParentOverlap),
		childSplit:  splitter.New(DefaultChildSize, DefaultChildOverlap),
		expansions:  DefaultExpansions,
		fusionK:     fusion.DefaultK,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Ready probes the embedding provider once and caches the outcome. A failed
// probe is fatal: similarity rankings cannot be trusted if index-time and
// query-time embeddings could diverge, so there is no degraded mode and no
// retry.
func (e *Engine) Ready(ctx context.Context) error {
	e.readyOnce.Do(func() {
		vecs, err := e.embedder.Embed(ctx, []string{"readiness probe"})
		if err != nil {
			e.readyErr = fmt.Errorf("embedding provider failed to initialize: %w", err)
			return
		}
		if len(vecs) != 1 || len(vecs[0]) == 0 {
			e.readyErr = errors.New("embedding provider returned no usable vector")
			return
		}
		if want := e.embedder.Dimensions(); want > 0 && len(vecs[0]) != want {
			e.readyErr = fmt.Errorf("embedding provider produced %d dimensions, expected %d", len(vecs[0]), want)
		}
	})
	return e.readyErr
}

// Reset clears a collection: its vector index entries and every parent
// record belonging to it. The vector side may degrade to per-document
// deletion; either way the collection is logically empty afterwards.
func (e *Engine) Reset(ctx context.Context, collection string) error {
	if collection == "" {
		return ErrNoCollection
	}

	if e.vectors.HasCollection(collection) {
		idx, err := e.vectors.Collection(collection)
		if err != nil {
			return fmt.Errorf("opening collection %q: %w", collection, err)
		}
		if err := idx.DeleteAll(ctx); err != nil {
			return fmt.Errorf("resetting vector index for %q: %w", collection, err)
		}
	}

	if err := e.parents.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("resetting parent store for %q: %w", collection, err)
	}
	return nil
}

// Stats reports how many parent and child chunks a collection holds.
func (e *Engine) Stats(ctx context.Context, collection string) (parents, children int, err error) {
	if collection == "" {
		return 0, 0, ErrNoCollection
	}

	parents, err = e.parents.CountCollection(ctx, collection)
	if err != nil {
		return 0, 0, err
	}

	if e.vectors.HasCollection(collection) {
		idx, err := e.vectors.Collection(collection)
		if err != nil {
			return 0, 0, err
		}
		children = idx.Count()
	}
	return parents, children, nil
}
