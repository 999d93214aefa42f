package openai

import (
	"context"

	"github.com/fwojciec/menurag"
	openai "github.com/sashabaranov/go-openai"
)

var _ menurag.Generator = (*Generator)(nil)

// Generator implements menurag.Generator with chat completions.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty cfg.Model selects
// DefaultModel.
func NewGenerator(cfg Config) *Generator {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: NewClient(cfg), model: model}
}

// Generate sends prompt as a single user message. A content_filter finish
// is reported as a block.
func (g *Generator) Generate(ctx context.Context, prompt string) (menurag.Response, error) {
	if prompt == "" {
		return menurag.Response{}, menurag.Errorf(menurag.EINVALID, "prompt required")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature: 0.2,
	})
	if err != nil {
		return menurag.Response{}, parseAPIError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return menurag.Response{}, nil
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return menurag.Response{BlockReason: string(choice.FinishReason)}, nil
	}
	return menurag.Response{Text: choice.Message.Content}, nil
}
