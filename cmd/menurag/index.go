package main

import (
	"fmt"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/fs"
	"github.com/fwojciec/menurag/rag"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	var kb []*menurag.Restaurant
	if err := fs.ReadJSON(deps.Files.KnowledgeBase(), &kb); err != nil {
		return err
	}

	if c.Chunks {
		docs, _ := menurag.BuildDocuments(kb)
		if err := fs.WriteJSON(deps.Files.Chunks(), docs); err != nil {
			return err
		}
	}

	indexer := rag.NewIndexer(deps.Embedder, deps.Store, deps.Logger, rag.WithBatchSize(c.BatchSize))
	result, err := indexer.Build(deps.Ctx, kb)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built index %s: %d menu items, dimension %d\n", result.BuildID, result.Documents, result.Dim)
	return nil
}
