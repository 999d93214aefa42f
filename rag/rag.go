// Package rag wires the retrieval-augmented pipeline together: it builds
// the vector index from the knowledge base, loads it back, retrieves the
// menu items closest to a query and asks a language model to answer from
// them.
package rag

import "log/slog"

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
