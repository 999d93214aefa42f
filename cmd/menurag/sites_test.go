package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/menurag"
	main "github.com/fwojciec/menurag/cmd/menurag"
	"github.com/fwojciec/menurag/fs"
	"github.com/fwojciec/menurag/mock"
	"github.com/fwojciec/menurag/scrape"
	"github.com/fwojciec/menurag/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes selected sites", func(t *testing.T) {
		t.Parallel()

		deps, stdout := newDeps(t)
		deps.Sitemaps = &mock.SitemapService{
			ListURLsFn: func(_ context.Context, url string, _ *menurag.URLFilter) ([]string, error) {
				assert.Equal(t, "https://food.test/brands.xml", url)
				return []string{
					"https://food.test/green-leaf/koramangala",
					"https://food.test/green-leaf/hsr",
					"https://food.test/green-leaf/btm",
					"https://food.test/spice-king/indiranagar",
					"https://food.test/about",
				}, nil
			},
		}

		err := (&main.SitesCmd{URL: "https://food.test/brands.xml", Max: 10, PerName: 2}).Run(deps)

		require.NoError(t, err)
		sites, err := yaml.ReadSites(deps.Files.Sites())
		require.NoError(t, err)
		require.Len(t, sites, 3)
		assert.Equal(t, "Green Leaf", sites[0].Name)
		assert.Equal(t, "Hsr", sites[1].Location)
		assert.Equal(t, "Spice King", sites[2].Name)
		assert.Contains(t, stdout.String(), "Wrote 3 sites from 5 URLs")
	})

	t.Run("passes URL patterns to the sitemap", func(t *testing.T) {
		t.Parallel()

		deps, _ := newDeps(t)
		deps.Sitemaps = &mock.SitemapService{
			ListURLsFn: func(_ context.Context, _ string, filter *menurag.URLFilter) ([]string, error) {
				require.NotNil(t, filter)
				assert.True(t, filter.Match("https://food.test/green-leaf/hsr"))
				assert.False(t, filter.Match("https://food.test/green-leaf/closed-hsr"))
				return []string{"https://food.test/green-leaf/hsr"}, nil
			},
		}

		err := (&main.SitesCmd{URL: "https://food.test/brands.xml", Exclude: []string{"closed-"}}).Run(deps)

		require.NoError(t, err)
	})

	t.Run("rejects invalid patterns", func(t *testing.T) {
		t.Parallel()

		deps, _ := newDeps(t)

		err := (&main.SitesCmd{URL: "https://food.test/brands.xml", Include: []string{"("}}).Run(deps)

		assert.Equal(t, menurag.EINVALID, menurag.ErrorCode(err))
	})

	t.Run("fails when nothing usable is listed", func(t *testing.T) {
		t.Parallel()

		deps, _ := newDeps(t)
		deps.Sitemaps = &mock.SitemapService{
			ListURLsFn: func(context.Context, string, *menurag.URLFilter) ([]string, error) {
				return []string{"https://food.test/about"}, nil
			},
		}

		err := (&main.SitesCmd{URL: "https://food.test/brands.xml"}).Run(deps)

		assert.Equal(t, menurag.ENOTFOUND, menurag.ErrorCode(err))
	})
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout := newDeps(t)
	require.NoError(t, yaml.WriteSites(deps.Files.Sites(), []menurag.Site{
		{Name: "Green Leaf", URL: "https://food.test/green-leaf/koramangala", Location: "Koramangala"},
		{Name: "Broken", URL: "https://food.test/broken/hsr", Location: "Hsr"},
	}))
	deps.Scraper = &scrape.Scraper{
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
			if url == "https://food.test/broken/hsr" {
				return "", errors.New("HTTP 503")
			}
			return "<html></html>", nil
		}},
		Extractor: &mock.MenuExtractor{ExtractMenuItemsFn: func(string) ([]menurag.RawMenuItem, error) {
			return []menurag.RawMenuItem{{Name: str("Salad")}}, nil
		}},
	}

	err := (&main.ScrapeCmd{Concurrency: 2}).Run(deps)

	require.NoError(t, err)
	var raws []menurag.RawRestaurant
	require.NoError(t, fs.ReadJSON(deps.Files.Raw(), &raws))
	require.Len(t, raws, 1)
	assert.Equal(t, "Green Leaf", raws[0].Name)
	assert.Equal(t, "Salad", *raws[0].MenuItems[0].Name)
	assert.Contains(t, stdout.String(), "Broken, Hsr: failed")
	assert.Contains(t, stdout.String(), "Scraped 1 sites (1 failed)")
}
