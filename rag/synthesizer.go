package rag

import (
	"context"
	"log/slog"

	"github.com/fwojciec/menurag"
)

// Synthesizer turns retrieved results into a natural language answer.
type Synthesizer struct {
	generator menurag.Generator
	logger    *slog.Logger
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(generator menurag.Generator, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{generator: generator, logger: loggerOrDiscard(logger)}
}

// Synthesize answers query from results. The generator is not called when
// there are no results. Model errors and unusable replies are logged and
// answered with menurag.FallbackAnswer.
func (s *Synthesizer) Synthesize(ctx context.Context, results []menurag.Result, query string) string {
	if len(results) == 0 {
		return menurag.NoInformationAnswer
	}

	prompt := BuildPrompt(menurag.FormatResults(results), query)

	resp, err := s.generator.Generate(ctx, prompt)
	switch {
	case err != nil:
		s.logger.Error("generating answer failed", "error", err)
		return menurag.FallbackAnswer
	case resp.Blocked():
		s.logger.Warn("answer blocked", "reason", resp.BlockReason)
		return menurag.FallbackAnswer
	case resp.Text == "":
		s.logger.Warn("model returned an empty answer")
		return menurag.FallbackAnswer
	}
	return resp.Text
}
