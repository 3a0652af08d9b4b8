package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DanielHalachev/WikiSearch/wikierrors"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider is a Provider backed by the OpenAI embeddings API.
type OpenAIProvider struct {
	Segmenter
	client *openai.Client
	model  openai.EmbeddingModel
	logger *slog.Logger
}

// NewOpenAIProvider builds an OpenAIProvider. An empty apiKey falls back
// to OPENAI_API_KEY; an empty modelName falls back to
// text-embedding-3-small.
func NewOpenAIProvider(apiKey string, modelName string) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	model := openai.SmallEmbedding3
	if modelName != "" {
		model = openai.EmbeddingModel(modelName)
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (o *OpenAIProvider) Encode(ctx context.Context, text string) ([]float64, error) {
	vectors, err := o.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (o *OpenAIProvider) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: o.model,
	})
	if err != nil {
		o.logger.Error("openai embedding request failed", "error", err)
		return nil, fmt.Errorf("%w: openai embedding request: %v", wikierrors.ErrEncoding, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: openai returned %d embeddings for %d inputs", wikierrors.ErrEncoding, len(resp.Data), len(texts))
	}

	out := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float64, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float64(v)
		}
		normalized, err := Normalize(vec)
		if err != nil {
			return nil, fmt.Errorf("%w: normalizing openai embedding: %v", wikierrors.ErrEncoding, err)
		}
		out[i] = normalized
	}
	return out, nil
}

var _ Provider = (*OpenAIProvider)(nil)
