package menurag

import "context"

// Answers returned in place of a model response.
const (
	// NoInformationAnswer is returned when there is no context to answer from.
	NoInformationAnswer = "I couldn't find relevant information to answer your question based on the available data."

	// FallbackAnswer is returned when the model call yields no usable text.
	FallbackAnswer = "Sorry, I could not generate a valid answer for that question."

	// NoMatchesAnswer is returned by the chatbot when retrieval finds nothing.
	NoMatchesAnswer = "I couldn't find any relevant menu items for your query based on the available data."
)

// Asker provides natural language question answering over the menu
// knowledge base.
type Asker interface {
	// Ask answers a question about restaurants and their menus.
	// Returns EINVALID if the question is empty.
	Ask(ctx context.Context, question string) (string, error)
}
