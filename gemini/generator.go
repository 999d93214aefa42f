package gemini

import (
	"context"

	"github.com/fwojciec/menurag"
	"google.golang.org/genai"
)

// Ensure Generator implements menurag.Generator at compile time.
var _ menurag.Generator = (*Generator)(nil)

// Generator implements menurag.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Generate sends prompt as a single user turn.
func (g *Generator) Generate(ctx context.Context, prompt string) (menurag.Response, error) {
	if prompt == "" {
		return menurag.Response{}, menurag.Errorf(menurag.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return menurag.Response{}, err
	}
	if result == nil {
		return menurag.Response{}, menurag.Errorf(menurag.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}

// ParseResponse converts a Gemini response into a menurag.Response. Prompt
// feedback blocks and safety-related finish reasons are reported as a block
// reason instead of text.
func ParseResponse(result *genai.GenerateContentResponse) menurag.Response {
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return menurag.Response{BlockReason: string(fb.BlockReason)}
	}
	if len(result.Candidates) == 0 {
		return menurag.Response{}
	}
	if reason := result.Candidates[0].FinishReason; blockedFinish(reason) {
		return menurag.Response{BlockReason: string(reason)}
	}
	return menurag.Response{Text: result.Text()}
}

func blockedFinish(reason genai.FinishReason) bool {
	switch reason {
	case genai.FinishReasonSafety,
		genai.FinishReasonRecitation,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSPII:
		return true
	}
	return false
}
