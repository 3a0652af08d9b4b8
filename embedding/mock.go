package embedding

import "context"

// MockProvider is a fixed-response Provider for tests. The vector it
// returns is used verbatim and is NOT re-normalized, so tests that care
// about the L2-normalization invariant should supply a normalized one.
type MockProvider struct {
	Segmenter
	Vector []float64
	Err    error
}

// NewMockProvider returns a MockProvider that always answers with vector.
func NewMockProvider(vector []float64) *MockProvider {
	return &MockProvider{Vector: vector}
}

// NewMockProviderWithError returns a MockProvider that always fails.
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Err: err}
}

func (m *MockProvider) Encode(ctx context.Context, text string) ([]float64, error) {
	return m.Vector, m.Err
}

func (m *MockProvider) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = m.Vector
	}
	return out, nil
}

var _ Provider = (*MockProvider)(nil)
