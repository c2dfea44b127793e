// Package embedding provides the embedding capability interface, a Gemini
// implementation, and the on-disk competency embedding cache.
package embedding

import (
	"context"
	"math"
)

// Provider maps a list of strings to fixed-dimension unit-normalized vectors,
// one per input, in input order. An empty input yields an empty output, not
// an error. Implementations may wrap remote or local embedding models; they
// are expensive and cold-starting, so callers cache results.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// ModelID identifies the underlying model; it participates in cache keys.
	ModelID() string
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched lengths or zero-magnitude inputs.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	mag := math.Sqrt(magA) * math.Sqrt(magB)
	if mag == 0 {
		return 0
	}
	return dot / mag
}

// normalizeL2 scales a vector to unit length in place. Zero vectors are left
// untouched.
func normalizeL2(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
