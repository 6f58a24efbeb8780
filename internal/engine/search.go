package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/recall-labs/recall/internal/docstore"
	"github.com/recall-labs/recall/internal/fusion"
	"github.com/recall-labs/recall/internal/metadata"
	"github.com/recall-labs/recall/internal/vectordb"
)

// Search expands the query into variants, runs them against the collection's
// vector index in parallel, fuses the ranked lists and resolves child hits
// to their parent's full content, deduplicated by parent. A collection that
// was never ingested into yields no results rather than an error.
func (e *Engine) Search(ctx context.Context, collection, query string, topK int) ([]SearchResult, error) {
	if collection == "" {
		return nil, ErrNoCollection
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if err := e.Ready(ctx); err != nil {
		return nil, err
	}

	if !e.vectors.HasCollection(collection) {
		return nil, nil
	}
	idx, err := e.vectors.Collection(collection)
	if err != nil {
		return nil, fmt.Errorf("engine: opening collection %q: %w", collection, err)
	}

	queries := []string{query}
	if e.expander != nil {
		queries = e.expander.Expand(ctx, query, e.expansions)
	}

	lists, err := e.queryVariants(ctx, idx, queries, topK*2)
	if err != nil {
		return nil, err
	}

	fused := fusion.Fuse(lists, e.fusionK)
	return e.resolve(ctx, fused, topK)
}

// queryVariants runs one index query per variant concurrently and joins the
// results in variant order, keeping fusion input deterministic. Individual
// variant failures degrade to the surviving lists; only a total failure is
// an error.
func (e *Engine) queryVariants(ctx context.Context, idx vectordb.Index, queries []string, fetch int) ([][]fusion.Item, error) {
	hits := make([][]vectordb.Hit, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			hits[i], errs[i] = idx.Query(ctx, q, fetch)
		}(i, q)
	}
	wg.Wait()

	var lists [][]fusion.Item
	var firstErr error
	for i := range queries {
		if errs[i] != nil {
			if firstErr == nil {
				firstErr = errs[i]
			}
			log.Printf("engine: query variant %q failed: %v", queries[i], errs[i])
			continue
		}
		items := make([]fusion.Item, len(hits[i]))
		for j, h := range hits[i] {
			items[j] = fusion.Item{ID: h.ID, Content: h.Content, Metadata: h.Metadata}
		}
		lists = append(lists, items)
	}

	if len(lists) == 0 && firstErr != nil {
		return nil, fmt.Errorf("engine: all query variants failed: %w", firstErr)
	}
	return lists, nil
}

// resolve walks the fused list in order, swapping each child hit for its
// parent's full content. A parent is emitted at most once per search; hits
// whose recorded parent no longer exists are skipped rather than failing
// the search.
func (e *Engine) resolve(ctx context.Context, fused []fusion.Scored, topK int) ([]SearchResult, error) {
	results := make([]SearchResult, 0, topK)
	emitted := make(map[string]bool)

	for _, entry := range fused {
		if len(results) == topK {
			break
		}

		parentID := metadata.String(entry.Metadata, metadata.KeyParentID)
		if parentID == "" {
			// Orphan leaf: no parent to expand to, emit the child itself.
			results = append(results, SearchResult{
				Content:    entry.Content,
				Metadata:   entry.Metadata,
				Score:      entry.Score,
				Provenance: ProvenanceChild,
			})
			continue
		}

		if emitted[parentID] {
			continue
		}

		rec, err := e.parents.Get(ctx, parentID)
		if errors.Is(err, docstore.ErrNotFound) {
			log.Printf("engine: child %s references missing parent %s, skipping", entry.ID, parentID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("engine: resolving parent %s: %w", parentID, err)
		}

		emitted[parentID] = true
		results = append(results, SearchResult{
			Content:    rec.Content,
			Metadata:   rec.Metadata,
			Score:      entry.Score,
			Provenance: ProvenanceParent,
		})
	}

	return results, nil
}
