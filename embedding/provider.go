package embedding

import "context"

// Provider is the contract every embedding backend satisfies: turning
// text into L2-normalized vectors, batching that for throughput, and
// packing long text into segments small enough to embed in one call.
type Provider interface {
	// Encode returns a single L2-normalized embedding vector for text.
	Encode(ctx context.Context, text string) ([]float64, error)
	// EncodeBatch returns one L2-normalized vector per input text.
	EncodeBatch(ctx context.Context, texts []string) ([][]float64, error)
	// Split greedily packs text into segments of at most maxSegmentLen
	// characters without splitting a sentence.
	Split(text string, maxSegmentLen int) []string
}

// Segmenter implements Provider.Split in terms of the package-level
// Split function; concrete providers embed it so they only need to
// implement Encode/EncodeBatch.
type Segmenter struct{}

func (Segmenter) Split(text string, maxSegmentLen int) []string {
	return Split(text, maxSegmentLen)
}
