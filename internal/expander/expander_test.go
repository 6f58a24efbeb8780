package expander

import (
	"context"
	"errors"
	"testing"

	"github.com/recall-labs/recall/internal/llm"
)

type scriptedProvider struct {
	output string
	err    error
}

func (p *scriptedProvider) Generate(context.Context, llm.GenerateRequest) (string, error) {
	return p.output, p.err
}
func (p *scriptedProvider) Name() string { return "scripted" }

func TestExpand_OriginalAlwaysFirst(t *testing.T) {
	e := New(&scriptedProvider{output: "how do I configure logging\nwhere are log settings"})

	got := e.Expand(context.Background(), "change log level", 2)
	if len(got) != 3 {
		t.Fatalf("got %d queries %q, want 3", len(got), got)
	}
	if got[0] != "change log level" {
		t.Errorf("first query is %q, want the original verbatim", got[0])
	}
}

func TestExpand_GenerationFailureDegradesToOriginal(t *testing.T) {
	e := New(&scriptedProvider{err: errors.New("model unavailable")})

	got := e.Expand(context.Background(), "change log level", 3)
	if len(got) != 1 || got[0] != "change log level" {
		t.Fatalf("got %q, want just the original query", got)
	}
}

func TestExpand_ZeroVariantsRequested(t *testing.T) {
	e := New(&scriptedProvider{output: "should never be used"})

	got := e.Expand(context.Background(), "q", 0)
	if len(got) != 1 || got[0] != "q" {
		t.Fatalf("got %q, want just the original query", got)
	}
}

func TestExpand_NoUsableLines(t *testing.T) {
	e := New(&scriptedProvider{output: "\n  \n\t\n"})

	got := e.Expand(context.Background(), "q", 3)
	if len(got) != 1 {
		t.Fatalf("got %q, want just the original query", got)
	}
}

func TestExpand_StripsNumberingAndBullets(t *testing.T) {
	e := New(&scriptedProvider{output: "1. first variant\n2) second variant\n- third variant\n\"fourth variant\""})

	got := e.Expand(context.Background(), "original", 4)
	want := []string{"original", "first variant", "second variant", "third variant", "fourth variant"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("query %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpand_DedupesAndCaps(t *testing.T) {
	e := New(&scriptedProvider{output: "Original\nvariant a\nvariant a\nvariant b\nvariant c"})

	got := e.Expand(context.Background(), "original", 2)
	// The echoed original and the duplicate are dropped; the cap is n+1.
	want := []string{"original", "variant a", "variant b"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("query %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpand_NilProvider(t *testing.T) {
	e := New(nil)

	got := e.Expand(context.Background(), "q", 3)
	if len(got) != 1 || got[0] != "q" {
		t.Fatalf("got %q, want just the original query", got)
	}
}
