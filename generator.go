package menurag

import "context"

// Response is a language model's reply to a prompt.
type Response struct {
	// Text is the generated answer. Empty when the model said nothing.
	Text string

	// BlockReason is set when the model refused the prompt.
	BlockReason string
}

// Blocked reports whether the model refused to answer.
func (r *Response) Blocked() bool {
	return r.BlockReason != ""
}

// Generator produces text from a prompt using a hosted language model.
type Generator interface {
	// Generate sends prompt to the model. A blocked or empty reply is
	// returned as a Response, not as an error.
	Generate(ctx context.Context, prompt string) (Response, error)
}
