package main

import (
	"fmt"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/yaml"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	filter, err := menurag.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return err
	}

	ctx, cancel := deps.withTimeout()
	defer cancel()

	urls, err := deps.Sitemaps.ListURLs(ctx, c.URL, filter)
	if err != nil {
		return err
	}

	sites := menurag.SelectSites(urls, c.Max, c.PerName)
	if len(sites) == 0 {
		return menurag.Errorf(menurag.ENOTFOUND, "no restaurant pages found in %s", c.URL)
	}

	path := deps.Files.Sites()
	if err := yaml.WriteSites(path, sites); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d sites from %d URLs to %s\n", len(sites), len(urls), path)
	return nil
}
