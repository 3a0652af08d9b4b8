// Package bedrock adapts AWS Bedrock's embedding models (Amazon Titan
// and Cohere) to embedding.Provider.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DanielHalachev/WikiSearch/embedding"
	"github.com/DanielHalachev/WikiSearch/wikierrors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Embedding model constants - Amazon Titan.
const (
	TitanEmbedTextV1   = "amazon.titan-embed-text-v1"
	TitanEmbedTextV2   = "amazon.titan-embed-text-v2:0"
	TitanEmbedG1Text02 = "amazon.titan-embed-g1-text-02"
)

// Embedding model constants - Cohere.
const (
	CohereEmbedEnglishV3      = "cohere.embed-english-v3"
	CohereEmbedMultilingualV3 = "cohere.embed-multilingual-v3"
	CohereEmbedV4             = "cohere.embed-v4:0"
)

// DefaultModel is the default embedding model.
const DefaultModel = TitanEmbedTextV2

// Provider implements embedding.Provider over AWS Bedrock.
type Provider struct {
	embedding.Segmenter
	client     *bedrockruntime.Client
	model      string
	region     string
	dimensions int // Titan V2 only: 256, 512, or 1024
	normalize  bool
	logger     *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

func WithModel(model string) Option {
	return func(p *Provider) { p.model = model }
}

func WithRegion(region string) Option {
	return func(p *Provider) { p.region = region }
}

func WithDimensions(dimensions int) Option {
	return func(p *Provider) { p.dimensions = dimensions }
}

func WithNormalize(normalize bool) Option {
	return func(p *Provider) { p.normalize = normalize }
}

// WithClient injects a preconfigured Bedrock client, for tests.
func WithClient(client *bedrockruntime.Client) Option {
	return func(p *Provider) { p.client = client }
}

// WithCredentials sets explicit AWS credentials instead of the default
// provider chain.
func WithCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(p *Provider) {
		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(p.region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				accessKeyID, secretAccessKey, sessionToken,
			)),
		)
		if err == nil {
			p.client = bedrockruntime.NewFromConfig(cfg)
		}
	}
}

// NewProvider builds a Provider, resolving the AWS region from
// AWS_REGION/AWS_DEFAULT_REGION when not set explicitly.
func NewProvider(opts ...Option) *Provider {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	p := &Provider{
		model:      DefaultModel,
		region:     region,
		dimensions: 1024,
		normalize:  true,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(p.region))
		if err == nil {
			p.client = bedrockruntime.NewFromConfig(cfg)
		}
	}
	return p
}

func (p *Provider) Encode(ctx context.Context, text string) ([]float64, error) {
	vectors, err := p.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *Provider) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	provider := p.providerName()
	if provider == "cohere" {
		return p.cohereBatch(ctx, texts)
	}

	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := p.invokeSingle(ctx, provider, text)
		if err != nil {
			return nil, fmt.Errorf("bedrock embedding %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

func (p *Provider) invokeSingle(ctx context.Context, provider, text string) ([]float64, error) {
	body, err := p.requestBody(provider, []string{text})
	if err != nil {
		return nil, err
	}

	resp, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.model),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		p.logger.Error("bedrock invoke model failed", "error", err)
		return nil, fmt.Errorf("%w: bedrock invoke model: %v", wikierrors.ErrEncoding, err)
	}

	vectors, err := p.parseResponse(provider, resp.Body)
	if err != nil {
		return nil, err
	}
	return normalizeResult(vectors[0])
}

func (p *Provider) cohereBatch(ctx context.Context, texts []string) ([][]float64, error) {
	truncated := make([]string, len(texts))
	for i, t := range texts {
		if len(t) > 2048 {
			t = t[:2048]
		}
		truncated[i] = t
	}

	body, err := p.requestBody("cohere", truncated)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.model),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		p.logger.Error("bedrock invoke model failed", "error", err)
		return nil, fmt.Errorf("%w: bedrock invoke model: %v", wikierrors.ErrEncoding, err)
	}

	vectors, err := p.parseResponse("cohere", resp.Body)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		normalized, err := normalizeResult(v)
		if err != nil {
			return nil, err
		}
		out[i] = normalized
	}
	return out, nil
}

func normalizeResult(v []float64) ([]float64, error) {
	normalized, err := embedding.Normalize(v)
	if err != nil {
		return nil, fmt.Errorf("%w: normalizing bedrock embedding: %v", wikierrors.ErrEncoding, err)
	}
	return normalized, nil
}

// providerName extracts the Bedrock provider prefix from the model id,
// e.g. "amazon.titan-embed-text-v2:0" -> "amazon".
func (p *Provider) providerName() string {
	parts := strings.Split(p.model, ".")
	switch len(parts) {
	case 2:
		return parts[0]
	case 3:
		return parts[1] // region-prefixed model id
	default:
		return "amazon"
	}
}

func (p *Provider) requestBody(provider string, texts []string) ([]byte, error) {
	switch provider {
	case "amazon":
		req := map[string]interface{}{"inputText": texts[0]}
		if p.model == TitanEmbedTextV2 {
			req["dimensions"] = p.dimensions
			req["normalize"] = p.normalize
		}
		return json.Marshal(req)
	case "cohere":
		req := map[string]interface{}{
			"texts":      texts,
			"input_type": "search_document",
		}
		return json.Marshal(req)
	default:
		return nil, fmt.Errorf("%w: unsupported bedrock embedding provider %q", wikierrors.ErrEncoding, provider)
	}
}

func (p *Provider) parseResponse(provider string, body []byte) ([][]float64, error) {
	switch provider {
	case "amazon":
		var resp struct {
			Embedding []float64 `json:"embedding"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: parsing titan response: %v", wikierrors.ErrEncoding, err)
		}
		return [][]float64{resp.Embedding}, nil
	case "cohere":
		var resp struct {
			Embeddings [][]float64 `json:"embeddings"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: parsing cohere response: %v", wikierrors.ErrEncoding, err)
		}
		if len(resp.Embeddings) == 0 {
			return nil, fmt.Errorf("%w: no embeddings in cohere response", wikierrors.ErrEncoding)
		}
		return resp.Embeddings, nil
	default:
		return nil, fmt.Errorf("%w: unsupported bedrock embedding provider %q", wikierrors.ErrEncoding, provider)
	}
}

var _ embedding.Provider = (*Provider)(nil)
