package embeddings

import (
	"context"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-6 {
		t.Errorf("normalized vector has length %f, want 1", math.Sqrt(sum))
	}
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("got %v, want [0.6 0.8]", vec)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	vec := Normalize([]float32{0, 0, 0})
	for i, v := range vec {
		if v != 0 {
			t.Errorf("component %d changed: %f", i, v)
		}
	}
}

type staticEmbedder struct{ vec []float32 }

func (s *staticEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vec
	}
	return out, nil
}
func (s *staticEmbedder) Dimensions() int { return len(s.vec) }
func (s *staticEmbedder) Name() string    { return "static" }

func TestToChromemFunc(t *testing.T) {
	fn := ToChromemFunc(&staticEmbedder{vec: []float32{1, 0}})

	vec, err := fn(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embedding func: %v", err)
	}
	if len(vec) != 2 || vec[0] != 1 {
		t.Errorf("got %v, want [1 0]", vec)
	}
}
