package mock

import (
	"context"

	"github.com/fwojciec/menurag"
)

var _ menurag.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of menurag.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, query string, k int) []menurag.Result
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []menurag.Result {
	return r.RetrieveFn(ctx, query, k)
}
