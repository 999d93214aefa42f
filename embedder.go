package menurag

import "context"

// Embedder maps texts to dense vectors.
type Embedder interface {
	// Embed returns one vector per text, in input order. All vectors share
	// the same dimension. Vectors are not normalized; callers normalize.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
