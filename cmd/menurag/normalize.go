package main

import (
	"fmt"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/fs"
)

// Run executes the normalize command.
func (c *NormalizeCmd) Run(deps *Dependencies) error {
	var raws []menurag.RawRestaurant
	if err := fs.ReadJSON(deps.Files.Raw(), &raws); err != nil {
		return err
	}

	kb, skipped := menurag.BuildKnowledgeBase(raws)
	if skipped > 0 {
		deps.Logger.Warn("skipped restaurants without menu items", "count", skipped)
	}

	path := deps.Files.KnowledgeBase()
	if err := fs.WriteJSON(path, kb); err != nil {
		return err
	}

	var items int
	for _, r := range kb {
		items += len(r.Menu)
	}
	fmt.Fprintf(deps.Stdout, "Normalized %d restaurants (%d skipped), %d menu items written to %s\n",
		len(kb), skipped, items, path)
	return nil
}
