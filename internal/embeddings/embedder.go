// Package embeddings turns text into fixed-length normalized vectors.
//
// All providers return unit-length (L2-normalized) vectors so that cosine
// similarity reduces to a dot product. Dimensionality is fixed for the
// lifetime of the process; mixing models between index build and query time
// silently corrupts similarity rankings, which is why provider setup
// failures are treated as fatal by the engine.
package embeddings

import (
	"context"
	"math"
)

// Embedder generates text embeddings.
type Embedder interface {
	// Embed generates one unit-length vector per input text. Empty input
	// yields an empty result without error.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the identifier of the embedding model.
	Name() string
}

// Normalize scales vec to unit length in place and returns it. Zero vectors
// are returned unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
