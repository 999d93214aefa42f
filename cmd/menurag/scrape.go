package main

import (
	"fmt"

	"github.com/fwojciec/menurag/fs"
	"github.com/fwojciec/menurag/scrape"
	"github.com/fwojciec/menurag/yaml"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sites, err := yaml.ReadSites(deps.Files.Sites())
	if err != nil {
		return err
	}

	deps.Scraper.Concurrency = c.Concurrency
	raws, result, err := deps.Scraper.Scrape(deps.Ctx, sites, func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s, %s: %d items\n", e.Completed, e.Total, e.Site.Name, e.Site.Location, e.Items)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s, %s: failed: %v\n", e.Completed, e.Total, e.Site.Name, e.Site.Location, e.Error)
		}
	})
	if err != nil {
		return err
	}

	path := deps.Files.Raw()
	if err := fs.WriteJSON(path, raws); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d sites (%d failed), %d menu items written to %s\n",
		result.Scraped, result.Failed, result.Items, path)
	return nil
}
