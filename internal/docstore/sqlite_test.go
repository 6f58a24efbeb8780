package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/recall-labs/recall/internal/metadata"
)

func TestSQLiteStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	rec := Record{
		ID:         "doc1_p_0",
		Collection: "docs",
		Content:    "the full parent passage",
		Metadata:   metadata.Map{"source_id": "doc1", "tier": "parent", "path": "a.md"},
	}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "doc1_p_0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != rec.Content {
		t.Errorf("content: got %q, want %q", got.Content, rec.Content)
	}
	if got.Collection != "docs" {
		t.Errorf("collection: got %q", got.Collection)
	}
	if metadata.String(got.Metadata, "path") != "a.md" {
		t.Errorf("metadata path: got %v", got.Metadata["path"])
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	_, err = store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: got %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_PutIsUpsert(t *testing.T) {
	ctx := context.Background()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	for i := 0; i < 2; i++ {
		err := store.Put(ctx, Record{ID: "doc1_p_0", Collection: "docs", Content: "v2", Metadata: metadata.Map{}})
		if err != nil {
			t.Fatalf("Put #%d: %v", i+1, err)
		}
	}

	n, err := store.CountCollection(ctx, "docs")
	if err != nil {
		t.Fatalf("CountCollection: %v", err)
	}
	if n != 1 {
		t.Errorf("count after double put: got %d, want 1", n)
	}
}

func TestSQLiteStore_DeleteCollectionIsScoped(t *testing.T) {
	ctx := context.Background()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	put := func(id, coll string) {
		t.Helper()
		if err := store.Put(ctx, Record{ID: id, Collection: coll, Content: "c", Metadata: metadata.Map{}}); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}
	put("a_p_0", "docs")
	put("a_p_1", "docs")
	put("b_p_0", "notes")

	if err := store.DeleteCollection(ctx, "docs"); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}

	if _, err := store.Get(ctx, "a_p_0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("docs record survived reset: %v", err)
	}
	if _, err := store.Get(ctx, "b_p_0"); err != nil {
		t.Errorf("notes record was deleted by docs reset: %v", err)
	}
}

func TestSQLiteStore_DurableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "parents.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	err = store.Put(ctx, Record{ID: "doc1_p_0", Collection: "docs", Content: "survives restarts", Metadata: metadata.Map{"n": 1}})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "doc1_p_0")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Content != "survives restarts" {
		t.Errorf("content after reopen: got %q", got.Content)
	}
}
