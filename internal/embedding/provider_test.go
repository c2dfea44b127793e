package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity_Identical(t *testing.T) {
	v := []float32{0.6, 0.8}
	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
}

func TestCosineSimilarity_MismatchedLengths(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{1}))
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}

func TestNormalizeL2_UnitLength(t *testing.T) {
	v := []float32{3, 4}
	normalizeL2(v)

	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)
}

func TestNormalizeL2_ZeroVectorUntouched(t *testing.T) {
	v := []float32{0, 0, 0}
	normalizeL2(v)

	assert.Equal(t, []float32{0, 0, 0}, v)
}
