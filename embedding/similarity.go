package embedding

import (
	"fmt"
	"math"
)

// Normalize scales v to unit L2 length, returning a new slice. The
// OpenAI and Bedrock providers normalize their raw model output through
// this before handing vectors to SemanticIndex (MockProvider returns
// its fixed vector as given), which
// relies on L2-normalization to make chromem-go's cosine similarity
// equivalent to a plain dot product.
func Normalize(v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("vector must not be empty")
	}

	var norm float64
	for _, val := range v {
		norm += val * val
	}
	norm = math.Sqrt(norm)

	if norm == 0 {
		return nil, fmt.Errorf("cannot normalize zero vector")
	}

	result := make([]float64, len(v))
	for i, val := range v {
		result[i] = val / norm
	}
	return result, nil
}
