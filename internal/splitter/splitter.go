// Package splitter implements recursive text splitting with overlap.
//
// Text is split on a cascade of separators, coarse to fine: paragraph
// breaks, line breaks, sentence boundaries, whitespace, and finally raw
// character windows. Pieces small enough to fit are merged back together
// into bounded segments, seeding each segment with the tail of the previous
// one so adjacent segments overlap.
package splitter

import "strings"

// DefaultSeparators is the separator cascade, coarse to fine. The empty
// string is the always-applicable character-level fallback.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into segments of at most maxSize characters.
type Splitter struct {
	maxSize    int
	overlap    int
	separators []string
}

// New creates a splitter producing segments of at most maxSize characters
// with roughly overlap characters shared between adjacent segments.
// An overlap >= maxSize is clamped to maxSize/4 so the merge step can
// always make forward progress.
func New(maxSize, overlap int) *Splitter {
	if maxSize <= 0 {
		maxSize = 400
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 4
	}
	return &Splitter{
		maxSize:    maxSize,
		overlap:    overlap,
		separators: DefaultSeparators,
	}
}

// MaxSize returns the configured segment size bound.
func (s *Splitter) MaxSize() int { return s.maxSize }

// Overlap returns the configured overlap length.
func (s *Splitter) Overlap() int { return s.overlap }

// Split splits text into ordered segments. Empty or whitespace-only input
// yields zero segments. Text that already fits within maxSize is returned
// as a single segment.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.maxSize {
		return []string{text}
	}
	return s.split(text, s.separators)
}

// split recursively splits text using the first separator that occurs in it,
// descending to finer separators for pieces that still exceed maxSize.
func (s *Splitter) split(text string, separators []string) []string {
	sep := ""
	var finer []string
	for i, candidate := range separators {
		if candidate == "" {
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			finer = separators[i+1:]
			break
		}
	}

	// No structural separator left: degrade to fixed character windows.
	if sep == "" {
		return s.windows(text)
	}

	pieces := strings.Split(text, sep)

	var segments []string
	var pending []string
	for _, piece := range pieces {
		if len(piece) < s.maxSize {
			pending = append(pending, piece)
			continue
		}
		// Oversized piece: flush what we have, then recurse into it with
		// the remaining, finer separators.
		if len(pending) > 0 {
			segments = append(segments, s.merge(pending, sep)...)
			pending = nil
		}
		segments = append(segments, s.split(piece, finer)...)
	}
	if len(pending) > 0 {
		segments = append(segments, s.merge(pending, sep)...)
	}
	return segments
}

// merge accumulates small pieces into segments bounded by maxSize, rejoining
// them with the separator they were split on. When a segment is closed, the
// trailing pieces whose combined length is at most overlap are kept as the
// seed of the next segment.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := len(sep)

	var segments []string
	var window []string
	total := 0

	for _, piece := range pieces {
		pieceLen := len(piece)

		if len(window) > 0 && total+pieceLen+sepLen > s.maxSize {
			if seg := strings.Join(window, sep); strings.TrimSpace(seg) != "" {
				segments = append(segments, seg)
			}
			// Pop from the front until the retained tail fits the overlap
			// budget and leaves room for the incoming piece.
			for len(window) > 0 && (total > s.overlap || total+pieceLen+sepLen > s.maxSize) {
				total -= len(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}

		window = append(window, piece)
		total += pieceLen
		if len(window) > 1 {
			total += sepLen
		}
	}

	if len(window) > 0 {
		if seg := strings.Join(window, sep); strings.TrimSpace(seg) != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// windows slices text into maxSize-character windows advancing by
// maxSize-overlap. This is the terminal degradation for atomic runs with no
// separators; it never errors on oversized input.
func (s *Splitter) windows(text string) []string {
	stride := s.maxSize - s.overlap
	if stride < 1 {
		stride = 1
	}

	var segments []string
	for start := 0; start < len(text); start += stride {
		end := start + s.maxSize
		if end >= len(text) {
			segments = append(segments, text[start:])
			break
		}
		segments = append(segments, text[start:end])
	}
	return segments
}
