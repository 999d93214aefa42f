package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/menurag/rag"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	knowledge, err := deps.loadKnowledge()
	if err != nil {
		return err
	}

	ctx, cancel := deps.withTimeout()
	defer cancel()

	results := rag.NewRetriever(deps.Embedder, knowledge, deps.Logger).Retrieve(ctx, c.Query, c.K)
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching menu items.")
		return nil
	}

	for i, r := range results {
		price := "N/A"
		if r.Price != nil {
			price = strconv.FormatFloat(*r.Price, 'f', -1, 64)
		}
		fmt.Fprintf(deps.Stdout, "%2d. %.4f  %s (%s, %s)  price: %s\n",
			i+1, r.SimilarityScore, r.ItemName, r.RestaurantName, r.Location, price)
	}
	return nil
}
