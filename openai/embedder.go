package openai

import (
	"context"

	"github.com/fwojciec/menurag"
	openai "github.com/sashabaranov/go-openai"
)

var _ menurag.Embedder = (*Embedder)(nil)

// Embedder implements menurag.Embedder with the embeddings endpoint.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbedder creates a new Embedder. An empty cfg.Model selects
// DefaultEmbeddingModel.
func NewEmbedder(cfg Config) *Embedder {
	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: NewClient(cfg), model: openai.EmbeddingModel(model)}
}

// Embed returns one vector per text in input order. Responses are placed
// by their index field, so providers may return them in any order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(texts))
		batch := texts[start:end]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:          batch,
			Model:          e.model,
			EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		})
		if err != nil {
			return nil, parseAPIError("embeddings", err)
		}
		if len(resp.Data) != len(batch) {
			return nil, menurag.Errorf(menurag.EINTERNAL, "embeddings: got %d vectors for %d texts", len(resp.Data), len(batch))
		}

		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(batch) || vectors[start+d.Index] != nil {
				return nil, menurag.Errorf(menurag.EINTERNAL, "embeddings: unexpected index %d", d.Index)
			}
			vectors[start+d.Index] = d.Embedding
		}
	}
	return vectors, nil
}
