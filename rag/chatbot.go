package rag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/menurag"
)

// DefaultTopK is how many menu items the chatbot retrieves per question.
const DefaultTopK = 50

// logTopN bounds how many retrieved items are logged per question.
const logTopN = 10

// Ensure Chatbot implements menurag.Asker at compile time.
var _ menurag.Asker = (*Chatbot)(nil)

// Chatbot answers questions by retrieving menu items and synthesizing an
// answer from them.
type Chatbot struct {
	retriever   *Retriever
	synthesizer *Synthesizer
	logger      *slog.Logger

	// TopK is the number of items retrieved per question.
	TopK int
}

// NewChatbot creates a Chatbot retrieving DefaultTopK items per question.
func NewChatbot(retriever *Retriever, synthesizer *Synthesizer, logger *slog.Logger) *Chatbot {
	return &Chatbot{
		retriever:   retriever,
		synthesizer: synthesizer,
		logger:      loggerOrDiscard(logger),
		TopK:        DefaultTopK,
	}
}

// Ask answers question. Only an empty question is an error.
func (c *Chatbot) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", menurag.Errorf(menurag.EINVALID, "question required")
	}

	results := c.retriever.Retrieve(ctx, question, c.TopK)
	if len(results) == 0 {
		c.logger.Info("no relevant context found", "question", question)
		return menurag.NoMatchesAnswer, nil
	}

	c.logger.Debug("retrieved context", "question", question, "items", len(results))
	for i, r := range results[:min(logTopN, len(results))] {
		c.logger.Debug("retrieved item",
			"rank", i+1,
			"restaurant", r.RestaurantName,
			"item", r.ItemName,
			"score", r.SimilarityScore,
		)
	}

	return c.synthesizer.Synthesize(ctx, results, question), nil
}
