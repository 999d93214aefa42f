package menurag

import "context"

// Retriever finds the menu items most similar to a query.
type Retriever interface {
	// Retrieve returns at most k results, best first. Failures are logged
	// by the implementation and yield an empty slice, never nil.
	Retrieve(ctx context.Context, query string, k int) []Result
}
