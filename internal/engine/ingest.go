package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/recall-labs/recall/internal/docstore"
	"github.com/recall-labs/recall/internal/metadata"
	"github.com/recall-labs/recall/internal/vectordb"
)

// ParentID derives the identifier of the i-th parent chunk of a source
// document. Child identifiers extend it, so a child's parent is always
// recoverable from its identifier prefix without a lookup.
func ParentID(sourceID string, i int) string {
	return fmt.Sprintf("%s_p_%d", sourceID, i)
}

// ChildID derives the identifier of the j-th child chunk of a parent.
func ChildID(parentID string, j int) string {
	return fmt.Sprintf("%s_c_%d", parentID, j)
}

// Ingest splits text into parent chunks (stored durably) and child chunks
// (embedded and indexed), all keyed deterministically by sourceID. If
// sourceID is empty a fresh one is generated. Re-ingesting the same
// sourceID overwrites the prior chunks.
func (e *Engine) Ingest(ctx context.Context, collection, text string, meta metadata.Map, sourceID string) (IngestResult, error) {
	if collection == "" {
		return IngestResult{}, ErrNoCollection
	}
	if strings.TrimSpace(text) == "" {
		return IngestResult{}, ErrEmptyInput
	}
	if err := metadata.ValidateUserSupplied(meta); err != nil {
		return IngestResult{}, fmt.Errorf("engine: invalid metadata: %w", err)
	}
	if err := e.Ready(ctx); err != nil {
		return IngestResult{}, err
	}

	if sourceID == "" {
		sourceID = uuid.NewString()
	}

	parentTexts := e.parentSplit.Split(text)
	if len(parentTexts) == 0 {
		return IngestResult{}, ErrEmptyInput
	}

	idx, err := e.vectors.Collection(collection)
	if err != nil {
		return IngestResult{}, fmt.Errorf("engine: opening collection %q: %w", collection, err)
	}

	var children []vectordb.Document
	for i, parentText := range parentTexts {
		parentID := ParentID(sourceID, i)

		parentMeta := metadata.Merge(meta, metadata.Map{
			metadata.KeyTier:     string(ProvenanceParent),
			metadata.KeySourceID: sourceID,
		})
		err := e.parents.Put(ctx, docstore.Record{
			ID:         parentID,
			Collection: collection,
			Content:    parentText,
			Metadata:   parentMeta,
		})
		if err != nil {
			return IngestResult{}, fmt.Errorf("engine: storing parent %s: %w", parentID, err)
		}

		childTexts := e.childSplit.Split(parentText)
		if len(childTexts) == 0 {
			// A parent below the child threshold still gets indexed: it
			// becomes its own single child.
			childTexts = []string{parentText}
		}

		for j, childText := range childTexts {
			children = append(children, vectordb.Document{
				ID:      ChildID(parentID, j),
				Content: childText,
				Metadata: metadata.Merge(meta, metadata.Map{
					metadata.KeyTier:     string(ProvenanceChild),
					metadata.KeySourceID: sourceID,
					metadata.KeyParentID: parentID,
				}),
			})
		}
	}

	if err := idx.Upsert(ctx, children); err != nil {
		return IngestResult{}, fmt.Errorf("engine: indexing children of %s: %w", sourceID, err)
	}

	return IngestResult{
		SourceID: sourceID,
		Parents:  len(parentTexts),
		Children: len(children),
	}, nil
}
