package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/menurag"
)

// Ensure LoggingEmbedder implements menurag.Embedder.
var _ menurag.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   menurag.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next menurag.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		dim := 0
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
		e.logger.Debug("embed",
			"texts", len(texts),
			"vectors", len(vectors),
			"dim", dim,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}
