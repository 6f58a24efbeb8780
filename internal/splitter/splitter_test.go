package splitter

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplit_ShortTextSingleSegment(t *testing.T) {
	s := New(100, 20)
	got := s.Split("a short paragraph")
	if len(got) != 1 || got[0] != "a short paragraph" {
		t.Fatalf("Split: got %q, want the input as a single segment", got)
	}
}

func TestSplit_EmptyAndWhitespaceYieldNoSegments(t *testing.T) {
	s := New(100, 20)
	for _, input := range []string{"", "   ", "\n\n\t \n"} {
		if got := s.Split(input); len(got) != 0 {
			t.Errorf("Split(%q): got %d segments, want 0", input, len(got))
		}
	}
}

func TestSplit_SizeBound(t *testing.T) {
	s := New(100, 20)

	var b strings.Builder
	for i := 0; i < 80; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog. ")
		if i%7 == 0 {
			b.WriteString("\n\n")
		}
	}

	segments := s.Split(b.String())
	if len(segments) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segments))
	}
	for i, seg := range segments {
		if len(seg) > 100 {
			t.Errorf("segment %d exceeds max size: %d chars", i, len(seg))
		}
		if strings.TrimSpace(seg) == "" {
			t.Errorf("segment %d is blank", i)
		}
	}
}

func TestSplit_Overlap(t *testing.T) {
	const maxSize, overlap = 100, 20
	s := New(maxSize, overlap)

	// Unique tokens so any shared suffix/prefix comes from the seeded
	// overlap, not from the text repeating itself.
	var b strings.Builder
	for i := 0; i < 250; i++ {
		fmt.Fprintf(&b, "w%03d ", i)
	}

	segments := s.Split(b.String())
	if len(segments) < 3 {
		t.Fatalf("expected several segments, got %d", len(segments))
	}

	for i := 1; i < len(segments); i++ {
		shared := commonSuffixPrefix(segments[i-1], segments[i])
		if shared == 0 {
			t.Errorf("segments %d and %d share no overlap", i-1, i)
		}
		if shared > overlap {
			t.Errorf("segments %d and %d share %d chars, more than the %d overlap", i-1, i, shared, overlap)
		}
	}
}

func TestSplit_AtomicOversizedInputDegradesToWindows(t *testing.T) {
	s := New(50, 10)

	// One 300-char "word": no separator applies at any level.
	text := strings.Repeat("x", 300)
	segments := s.Split(text)
	if len(segments) < 2 {
		t.Fatalf("expected windowed segments, got %d", len(segments))
	}
	for i, seg := range segments {
		if len(seg) > 50 {
			t.Errorf("segment %d exceeds max size: %d chars", i, len(seg))
		}
	}

	var joinedLen int
	for _, seg := range segments {
		joinedLen += len(seg)
	}
	if joinedLen < len(text) {
		t.Errorf("windows lost content: %d chars covered, input has %d", joinedLen, len(text))
	}
}

func TestSplit_ParagraphsPreferredOverFinerCuts(t *testing.T) {
	s := New(60, 0)

	text := "first paragraph is long enough to stand on its own.\n\n" +
		"second paragraph is long enough to stand on its own."
	segments := s.Split(text)
	if len(segments) != 2 {
		t.Fatalf("got %d segments %q, want 2 paragraph segments", len(segments), segments)
	}
	if !strings.Contains(segments[0], "first paragraph") || !strings.Contains(segments[1], "second paragraph") {
		t.Errorf("paragraph boundaries not respected: %q", segments)
	}
}

func TestNew_DegenerateOverlapClamped(t *testing.T) {
	s := New(100, 100)
	if s.Overlap() >= s.MaxSize() {
		t.Fatalf("overlap %d not clamped below max size %d", s.Overlap(), s.MaxSize())
	}

	// Must terminate and honor the bound even with the degenerate request.
	segments := s.Split(strings.Repeat("word ", 200))
	for i, seg := range segments {
		if len(seg) > 100 {
			t.Errorf("segment %d exceeds max size: %d chars", i, len(seg))
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s := New(80, 15)
	text := strings.Repeat("Lorem ipsum dolor sit amet. Consectetur adipiscing elit.\n", 30)

	first := s.Split(text)
	second := s.Split(text)
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs between runs", i)
		}
	}
}

// commonSuffixPrefix returns the length of the longest suffix of a that is
// also a prefix of b.
func commonSuffixPrefix(a, b string) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	for l := max; l > 0; l-- {
		if a[len(a)-l:] == b[:l] {
			return l
		}
	}
	return 0
}
