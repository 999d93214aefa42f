// Package gemini implements menurag.Generator and menurag.Embedder on top of
// the Google Gemini API.
package gemini

// Default models.
const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// MaxBatchSize is the largest number of texts sent in one embedding call.
const MaxBatchSize = 100
