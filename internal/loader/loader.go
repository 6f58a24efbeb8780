package loader

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/recall-labs/recall/internal/metadata"
)

// DefaultMaxFileSize is the maximum file size to ingest (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// Document is a single file prepared for ingestion: its extracted text
// plus the metadata that travels with every chunk derived from it.
type Document struct {
	Path     string // Absolute path on disk.
	RelPath  string // Path relative to the root directory.
	SourceID string // Stable identifier derived from the relative path.
	Content  string // Extracted plain text.
	Metadata metadata.Map
}

// Config controls the behaviour of Load.
type Config struct {
	RootDir     string   // Root directory to walk.
	Include     []string // Glob patterns — only matching files are included.
	Exclude     []string // Glob patterns — matching files are excluded.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Load traverses the directory tree rooted at config.RootDir and returns
// a document for every text file that passes filtering. Markdown files
// are reduced to their plain text; binary files are skipped.
func Load(config Config) ([]Document, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if !info.IsDir() {
		doc, err := loadFile(root, filepath.Base(root))
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, nil
		}
		return []Document{*doc}, nil
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var docs []Document

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if !MatchesInclude(relPath, config.Include) {
			return nil
		}
		if MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if fi.Size() > maxSize {
			return nil
		}

		doc, err := loadFile(path, relPath)
		if err != nil || doc == nil {
			return nil
		}
		docs = append(docs, *doc)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("loader: traversal: %w", err)
	}

	return docs, nil
}

// loadFile reads one file, extracts its text, and builds the document.
// Returns nil for binary or empty files.
func loadFile(path, relPath string) (*Document, error) {
	if isBinary(path) {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", relPath, err)
	}

	name := filepath.Base(path)
	lang := DetectLanguage(name)

	content := string(raw)
	if lang == "Markdown" {
		content = ExtractMarkdownText(raw)
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	rel := filepath.ToSlash(relPath)
	return &Document{
		Path:     path,
		RelPath:  rel,
		SourceID: SourceID(rel),
		Content:  content,
		Metadata: metadata.Map{
			"path":     rel,
			"language": lang,
		},
	}, nil
}

// SourceID derives a stable chunk-id-safe identifier from a relative
// path: lowercase, with everything outside [a-z0-9.-] collapsed to '-'.
func SourceID(relPath string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(filepath.ToSlash(relPath)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// isBinary reads the first 512 bytes of a file and checks for NUL bytes,
// which is a simple but effective heuristic for binary content.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true // treat unreadable files as binary
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}
