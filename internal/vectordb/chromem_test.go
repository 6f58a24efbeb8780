package vectordb

import (
	"context"
	"math"
	"testing"

	"github.com/recall-labs/recall/internal/metadata"
)

// hashEmbedder produces deterministic unit vectors from text. Texts sharing
// characters land near each other, which is enough signal for ranking tests.
type hashEmbedder struct {
	dims int
}

func (m *hashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, m.dims)
		for j, ch := range text {
			vec[(int(ch)+j)%m.dims]++
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v * v)
		}
		if n := math.Sqrt(norm); n > 0 {
			for j := range vec {
				vec[j] = float32(float64(vec[j]) / n)
			}
		}
		out[i] = vec
	}
	return out, nil
}

func (m *hashEmbedder) Dimensions() int { return m.dims }
func (m *hashEmbedder) Name() string    { return "hash" }

func newTestProvider() *ChromemProvider {
	return NewMemoryProvider(&hashEmbedder{dims: 64})
}

func TestChromemIndex_UpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider()

	idx, err := provider.Collection("docs")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}

	docs := []Document{
		{ID: "d1_p_0_c_0", Content: "user authentication login and sessions", Metadata: metadata.Map{"parent_id": "d1_p_0"}},
		{ID: "d1_p_0_c_1", Content: "database connection pooling setup", Metadata: metadata.Map{"parent_id": "d1_p_0"}},
		{ID: "d1_p_1_c_0", Content: "http routing middleware chain", Metadata: metadata.Map{"parent_id": "d1_p_1"}},
	}
	if err := idx.Upsert(ctx, docs); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if idx.Count() != 3 {
		t.Fatalf("Count: got %d, want 3", idx.Count())
	}

	hits, err := idx.Query(ctx, "user authentication login", 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Query returned %d hits, want 2", len(hits))
	}
	for i, h := range hits {
		if h.Rank != i {
			t.Errorf("hit %d has rank %d", i, h.Rank)
		}
	}
	if hits[0].Similarity < hits[1].Similarity {
		t.Errorf("hits not ordered by similarity: %f < %f", hits[0].Similarity, hits[1].Similarity)
	}
	if metadata.String(hits[0].Metadata, "parent_id") == "" {
		t.Error("hit lost its parent_id metadata")
	}
	if _, ok := hits[0].Metadata[collectionKey]; ok {
		t.Error("internal collection tag leaked into results")
	}
}

func TestChromemIndex_UpsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider()

	idx, err := provider.Collection("docs")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}

	doc := Document{ID: "d1_p_0_c_0", Content: "first version", Metadata: metadata.Map{}}
	if err := idx.Upsert(ctx, []Document{doc}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	doc.Content = "second version"
	if err := idx.Upsert(ctx, []Document{doc}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}

	if idx.Count() != 1 {
		t.Fatalf("Count after re-upsert: got %d, want 1", idx.Count())
	}

	hits, err := idx.Query(ctx, "second version", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 1 || hits[0].Content != "second version" {
		t.Errorf("got %+v, want the replaced content", hits)
	}
}

func TestChromemIndex_QueryEmptyCollection(t *testing.T) {
	provider := newTestProvider()

	idx, err := provider.Collection("empty")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}

	hits, err := idx.Query(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Query on empty collection: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits from empty collection", len(hits))
	}
}

func TestChromemIndex_DeleteAll(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider()

	idx, err := provider.Collection("docs")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	err = idx.Upsert(ctx, []Document{
		{ID: "a", Content: "one", Metadata: metadata.Map{}},
		{ID: "b", Content: "two", Metadata: metadata.Map{}},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := idx.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if idx.Count() != 0 {
		t.Errorf("Count after DeleteAll: got %d, want 0", idx.Count())
	}

	// The index stays usable after the underlying collection was dropped.
	if err := idx.Upsert(ctx, []Document{{ID: "c", Content: "three", Metadata: metadata.Map{}}}); err != nil {
		t.Fatalf("Upsert after DeleteAll: %v", err)
	}
	if idx.Count() != 1 {
		t.Errorf("Count after re-upsert: got %d, want 1", idx.Count())
	}
}

func TestChromemProvider_HasCollection(t *testing.T) {
	provider := newTestProvider()

	if provider.HasCollection("docs") {
		t.Error("HasCollection true before creation")
	}
	if _, err := provider.Collection("docs"); err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if !provider.HasCollection("docs") {
		t.Error("HasCollection false after creation")
	}
}

func TestChromemProvider_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider()

	docsIdx, err := provider.Collection("docs")
	if err != nil {
		t.Fatalf("Collection docs: %v", err)
	}
	notesIdx, err := provider.Collection("notes")
	if err != nil {
		t.Fatalf("Collection notes: %v", err)
	}

	if err := docsIdx.Upsert(ctx, []Document{{ID: "a", Content: "docs content", Metadata: metadata.Map{}}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if notesIdx.Count() != 0 {
		t.Errorf("notes collection sees docs content: count %d", notesIdx.Count())
	}
}
