// Package expander produces semantically equivalent reformulations of a
// search query using a text-generation model. Expansion is best-effort: any
// failure degrades to searching with the original query alone.
package expander

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/recall-labs/recall/internal/llm"
)

const systemPrompt = `You rewrite search queries. Given a query, produce alternative phrasings that mean the same thing but use different words, so they can surface documents the original wording would miss. Output one rewrite per line with no numbering, bullets or commentary.`

// Expander generates query variants.
type Expander struct {
	provider llm.Provider
}

// New creates an expander backed by the given provider.
func New(provider llm.Provider) *Expander {
	return &Expander{provider: provider}
}

// Expand returns the original query followed by up to n model-generated
// paraphrases. The first element is always query verbatim; generation
// failures, unusable output and n <= 0 all degrade to just [query].
func (e *Expander) Expand(ctx context.Context, query string, n int) []string {
	queries := []string{query}
	if n <= 0 || e.provider == nil {
		return queries
	}

	out, err := e.provider.Generate(ctx, llm.GenerateRequest{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf("Rewrite this search query %d different ways:\n\n%s", n, query),
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("expander: generation failed, searching with original query only: %v", err)
		return queries
	}

	seen := map[string]bool{canonical(query): true}
	for _, line := range strings.Split(out, "\n") {
		variant := cleanLine(line)
		if variant == "" || seen[canonical(variant)] {
			continue
		}
		seen[canonical(variant)] = true
		queries = append(queries, variant)
		if len(queries) == n+1 {
			break
		}
	}
	return queries
}

// cleanLine strips the numbering, bullets and quoting models tend to add
// despite instructions.
func cleanLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*•")
	s = strings.TrimSpace(s)

	// Leading "1." / "2)" style numbering.
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		s = strings.TrimSpace(s[i+1:])
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
