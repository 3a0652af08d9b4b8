package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderEncode(t *testing.T) {
	p := NewMockProvider([]float64{0.1, 0.2, 0.3})
	vec, err := p.Encode(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestMockProviderEncodeBatch(t *testing.T) {
	p := NewMockProvider([]float64{1, 0})
	vecs, err := p.EncodeBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.Equal(t, []float64{1, 0}, v)
	}
}

func TestMockProviderWithError(t *testing.T) {
	p := NewMockProviderWithError(errors.New("boom"))
	_, err := p.Encode(context.Background(), "x")
	assert.Error(t, err)
	_, err = p.EncodeBatch(context.Background(), []string{"x"})
	assert.Error(t, err)
}
