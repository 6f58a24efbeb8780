// Package fusion merges independently ranked result lists into one using
// Reciprocal Rank Fusion.
package fusion

import (
	"sort"

	"github.com/recall-labs/recall/internal/metadata"
)

// DefaultK is the conventional RRF constant; it keeps top ranks from
// dominating the fused score.
const DefaultK = 60

// Item is one entry of a ranked input list, in descending-relevance order.
type Item struct {
	ID       string
	Content  string
	Metadata metadata.Map
}

// Scored is one fused output entry.
type Scored struct {
	Item
	Score float64
}

// Fuse merges ranked lists with Reciprocal Rank Fusion: each appearance of
// an id at zero-based rank r contributes 1/(k+r) to its cumulative score,
// summed across lists. The first-seen content and metadata of an id are
// retained as its payload. Output is ordered by descending score; ties keep
// first-seen order, so the result is deterministic for identical input.
func Fuse(lists [][]Item, k int) []Scored {
	if k <= 0 {
		k = DefaultK
	}

	scores := make(map[string]float64)
	payload := make(map[string]Item)
	var order []string

	for _, list := range lists {
		for rank, item := range list {
			if _, seen := scores[item.ID]; !seen {
				payload[item.ID] = item
				order = append(order, item.ID)
			}
			scores[item.ID] += 1.0 / float64(k+rank)
		}
	}

	fused := make([]Scored, len(order))
	for i, id := range order {
		fused[i] = Scored{Item: payload[id], Score: scores[id]}
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})
	return fused
}
