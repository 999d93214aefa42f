package rag

import (
	"context"
	"log/slog"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/flat"
)

// Ensure Retriever implements menurag.Retriever at compile time.
var _ menurag.Retriever = (*Retriever)(nil)

// Retriever finds the menu items most similar to a query.
// It is safe for concurrent use.
type Retriever struct {
	embedder  menurag.Embedder
	knowledge *Knowledge
	logger    *slog.Logger
}

// NewRetriever creates a Retriever over knowledge.
func NewRetriever(embedder menurag.Embedder, knowledge *Knowledge, logger *slog.Logger) *Retriever {
	return &Retriever{
		embedder:  embedder,
		knowledge: knowledge,
		logger:    loggerOrDiscard(logger),
	}
}

// Retrieve returns up to k results ordered by descending similarity. k is
// capped at the corpus size. Failures are logged and yield an empty slice;
// Retrieve never fails.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []menurag.Result {
	results := []menurag.Result{}
	if k <= 0 || r.knowledge == nil || r.knowledge.Index.Len() == 0 {
		return results
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		r.logger.Error("embedding query failed", "error", err)
		return results
	}
	if len(vectors) != 1 {
		r.logger.Error("embedding query failed", "error", "unexpected vector count", "count", len(vectors))
		return results
	}

	k = min(k, r.knowledge.Index.Len())
	scores, positions, err := r.knowledge.Index.Search(flat.Normalize(vectors[0]), k)
	if err != nil {
		r.logger.Error("index search failed", "error", err)
		return results
	}

	metadata := r.knowledge.Metadata
	for i, pos := range positions {
		if pos == flat.NoMatch {
			r.logger.Warn("skipping empty candidate", "rank", i+1)
			continue
		}
		if pos < 0 || pos >= len(metadata) {
			r.logger.Warn("skipping out of range candidate", "position", pos, "metadata", len(metadata))
			continue
		}
		results = append(results, menurag.Result{
			Metadata:        metadata[pos].Clone(),
			SimilarityScore: scores[i],
		})
	}
	return results
}
