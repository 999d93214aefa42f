package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/menurag"
)

var _ menurag.Generator = (*Generator)(nil)

// Generator is a mock implementation of menurag.Generator.
// It records the prompts it receives.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (menurag.Response, error)

	mu      sync.Mutex
	prompts []string
}

func (g *Generator) Generate(ctx context.Context, prompt string) (menurag.Response, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.GenerateFn(ctx, prompt)
}

// Prompts returns the prompts passed to Generate so far.
func (g *Generator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}
