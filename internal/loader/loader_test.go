package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recall-labs/recall/internal/metadata"
)

// writeTree materializes a map of relative path -> content under a temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestLoad_BasicTraversal(t *testing.T) {
	root := writeTree(t, map[string]string{
		"README.md":         "# Sample\n\nA sample project.",
		"notes/plan.txt":    "the plan is simple",
		"src/main.go":       "package main\n\nfunc main() {}\n",
		"image.bin":         "PNG\x00\x00binary",
		"node_modules/x.js": "excluded by default",
		".recall/state":     "excluded by default",
		"empty.txt":         "   \n",
	})

	docs, err := Load(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got := make(map[string]Document)
	for _, d := range docs {
		got[d.RelPath] = d
	}

	for _, want := range []string{"README.md", "notes/plan.txt", "src/main.go"} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected document %q not loaded", want)
		}
	}
	for _, skip := range []string{"image.bin", "node_modules/x.js", ".recall/state", "empty.txt"} {
		if _, ok := got[skip]; ok {
			t.Errorf("document %q should have been skipped", skip)
		}
	}

	readme := got["README.md"]
	if strings.Contains(readme.Content, "#") {
		t.Errorf("markdown markup not stripped: %q", readme.Content)
	}
	if !strings.Contains(readme.Content, "A sample project.") {
		t.Errorf("markdown text missing: %q", readme.Content)
	}
	if metadata.String(readme.Metadata, "language") != "Markdown" {
		t.Errorf("language: got %v", readme.Metadata["language"])
	}
	if metadata.String(readme.Metadata, "path") != "README.md" {
		t.Errorf("path metadata: got %v", readme.Metadata["path"])
	}
}

func TestLoad_IncludeExcludePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/a.md":    "alpha",
		"docs/b.txt":   "bravo",
		"src/c.md":     "charlie",
		"docs/skip.md": "delta",
	})

	docs, err := Load(Config{
		RootDir: root,
		Include: []string{"docs/**"},
		Exclude: []string{"**/skip.md"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var rels []string
	for _, d := range docs {
		rels = append(rels, d.RelPath)
	}
	if len(rels) != 2 {
		t.Fatalf("got %v, want docs/a.md and docs/b.txt", rels)
	}
	for _, rel := range rels {
		if rel == "src/c.md" || rel == "docs/skip.md" {
			t.Errorf("%s should have been filtered out", rel)
		}
	}
}

func TestLoad_SizeLimit(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.txt": "fits",
		"large.txt": strings.Repeat("x", 200),
	})

	docs, err := Load(Config{RootDir: root, MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(docs) != 1 || docs[0].RelPath != "small.txt" {
		t.Fatalf("got %v, want only small.txt", docs)
	}
}

func TestLoad_SingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{"only.md": "# One\n\njust one file"})

	docs, err := Load(Config{RootDir: filepath.Join(root, "only.md")})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if !strings.Contains(docs[0].Content, "just one file") {
		t.Errorf("content: %q", docs[0].Content)
	}
}

func TestSourceID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"README.md", "readme.md"},
		{"docs/Getting Started.md", "docs-getting-started.md"},
		{"a_b/c.txt", "a-b-c.txt"},
		{"/leading/slash", "leading-slash"},
	}
	for _, c := range cases {
		if got := SourceID(c.in); got != c.want {
			t.Errorf("SourceID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"main.go", "Go"},
		{"notes.md", "Markdown"},
		{"Dockerfile", "Dockerfile"},
		{"script.sh", "Shell"},
		{"mystery.xyz", "unknown"},
		{"noextension", "unknown"},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.in); got != c.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractMarkdownText(t *testing.T) {
	src := []byte("# Title\n\nSome **bold** text with a [link](https://example.com).\n\n```go\nfunc main() {}\n```\n\n<div>raw html</div>\n\n- item one\n- item two\n")
	got := ExtractMarkdownText(src)

	for _, want := range []string{"Title", "bold", "link", "func main() {}", "item one", "item two"} {
		if !strings.Contains(got, want) {
			t.Errorf("extracted text missing %q:\n%s", want, got)
		}
	}
	for _, markup := range []string{"#", "**", "https://example.com", "```", "<div>"} {
		if strings.Contains(got, markup) {
			t.Errorf("extracted text still contains %q:\n%s", markup, got)
		}
	}

	// Paragraph boundaries must survive for downstream chunking.
	if !strings.Contains(got, "\n\n") {
		t.Error("block boundaries collapsed")
	}
}
