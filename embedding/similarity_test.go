package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProducesUnitLength(t *testing.T) {
	out, err := Normalize([]float64{3, 4})
	require.NoError(t, err)

	var normSq float64
	for _, v := range out {
		normSq += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(normSq), 1e-9)
	assert.InDelta(t, 0.6, out[0], 1e-9)
	assert.InDelta(t, 0.8, out[1], 1e-9)
}

func TestNormalizeRejectsZeroVector(t *testing.T) {
	_, err := Normalize([]float64{0, 0, 0})
	assert.Error(t, err)
}

func TestNormalizeRejectsEmptyVector(t *testing.T) {
	_, err := Normalize(nil)
	assert.Error(t, err)
}
