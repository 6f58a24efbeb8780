package metadata

import "testing"

func TestValidate(t *testing.T) {
	ok := Map{
		"path":     "docs/readme.md",
		"language": "markdown",
		"lines":    120,
		"ratio":    0.5,
		"indexed":  true,
	}
	if err := Validate(ok); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := Map{"nested": map[string]any{"a": 1}}
	if err := Validate(bad); err == nil {
		t.Fatal("Validate accepted a nested map")
	}

	badSlice := Map{"tags": []string{"a", "b"}}
	if err := Validate(badSlice); err == nil {
		t.Fatal("Validate accepted a slice value")
	}
}

func TestValidateUserSupplied_ReservedKeys(t *testing.T) {
	for _, key := range []string{KeyTier, KeySourceID, KeyParentID} {
		m := Map{key: "x"}
		if err := ValidateUserSupplied(m); err == nil {
			t.Errorf("ValidateUserSupplied accepted reserved key %q", key)
		}
	}
}

func TestMerge_DoesNotMutateBase(t *testing.T) {
	base := Map{"a": 1, "b": "keep"}
	merged := Merge(base, Map{"b": "replaced", "c": true})

	if base["b"] != "keep" {
		t.Errorf("Merge mutated base: %v", base)
	}
	if merged["b"] != "replaced" || merged["a"] != 1 || merged["c"] != true {
		t.Errorf("Merge result wrong: %v", merged)
	}
}

func TestFlattenUnflatten(t *testing.T) {
	m := Map{
		"path":    "a/b.go",
		"lines":   int64(42),
		"score":   1.5,
		"indexed": true,
	}

	got := Unflatten(Flatten(m))

	if got["path"] != "a/b.go" {
		t.Errorf("path: got %v", got["path"])
	}
	if got["lines"] != int64(42) {
		t.Errorf("lines: got %v (%T)", got["lines"], got["lines"])
	}
	if got["score"] != 1.5 {
		t.Errorf("score: got %v (%T)", got["score"], got["score"])
	}
	if got["indexed"] != true {
		t.Errorf("indexed: got %v (%T)", got["indexed"], got["indexed"])
	}
}

func TestUnflatten_ReservedKeysStayStrings(t *testing.T) {
	flat := map[string]string{
		KeySourceID: "12345",
		KeyParentID: "12345_p_0",
		KeyTier:     "child",
	}

	got := Unflatten(flat)
	if got[KeySourceID] != "12345" {
		t.Errorf("source_id: got %v (%T), want string", got[KeySourceID], got[KeySourceID])
	}
}
