package gemini

import (
	"context"

	"github.com/fwojciec/menurag"
	"google.golang.org/genai"
)

var _ menurag.Embedder = (*Embedder)(nil)

// Embedder implements menurag.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns one vector per text. Texts are sent in batches of at most
// MaxBatchSize.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for _, batch := range Batches(texts, MaxBatchSize) {
		result, err := e.client.Models.EmbedContent(ctx, e.model, Contents(batch), nil)
		if err != nil {
			return nil, err
		}
		if result == nil || len(result.Embeddings) != len(batch) {
			return nil, menurag.Errorf(menurag.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(batch))
		}
		for _, emb := range result.Embeddings {
			vectors = append(vectors, emb.Values)
		}
	}
	return vectors, nil
}

// Contents wraps each text as a user content part.
func Contents(texts []string) []*genai.Content {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}
	return contents
}

// Batches splits texts into consecutive slices of at most size elements.
func Batches(texts []string, size int) [][]string {
	if size <= 0 {
		size = len(texts)
	}
	var out [][]string
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		out = append(out, texts[start:end])
	}
	return out
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
