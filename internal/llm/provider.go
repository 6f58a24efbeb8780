// Package llm abstracts the text-generation services used for query
// expansion. Providers are single-turn: one system prompt, one user prompt,
// one short completion.
package llm

import "context"

// GenerateRequest is a single-turn generation request.
type GenerateRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Provider generates text completions.
type Provider interface {
	// Generate returns the completion text for the request.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Name returns the name of this provider.
	Name() string
}
