package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/mock"
	menuslog "github.com/fwojciec/menurag/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_ListURLs(t *testing.T) {
	t.Parallel()

	const brands = "https://food.test/sitemaps/brands.xml"

	t.Run("logs URL and restaurant page counts at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		svc := menuslog.NewLoggingSitemapService(&mock.SitemapService{
			ListURLsFn: func(context.Context, string, *menurag.URLFilter) ([]string, error) {
				return []string{
					"https://food.test/green-leaf/hsr",
					"https://food.test/spice-king/indiranagar",
					"https://food.test/about",
				}, nil
			},
		}, logger)
		filter, err := menurag.NewURLFilter(nil, []string{`/closed-`})
		require.NoError(t, err)

		urls, err := svc.ListURLs(context.Background(), brands, filter)

		require.NoError(t, err)
		assert.Len(t, urls, 3)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG msg=sitemap")
		assert.Contains(t, output, "url="+brands)
		assert.Contains(t, output, "count=3")
		assert.Contains(t, output, "restaurants=2")
		assert.Contains(t, output, "filtered=true")
	})

	t.Run("warns on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		svc := menuslog.NewLoggingSitemapService(&mock.SitemapService{
			ListURLsFn: func(context.Context, string, *menurag.URLFilter) ([]string, error) {
				return nil, errors.New("connection refused")
			},
		}, logger)

		_, err := svc.ListURLs(context.Background(), brands, nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN msg=\"sitemap failed\"")
		assert.Contains(t, output, "err=\"connection refused\"")
	})
}
