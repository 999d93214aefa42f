package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/menurag"
)

// Ensure LoggingGenerator implements menurag.Generator.
var _ menurag.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   menurag.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next menurag.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string) (resp menurag.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"prompt_bytes", len(prompt),
			"answer_bytes", len(resp.Text),
			"duration", time.Since(begin),
			"err", err,
		}
		if resp.Blocked() {
			attrs = append(attrs, "blocked", resp.BlockReason)
		}
		g.logger.Info("generate", attrs...)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}
