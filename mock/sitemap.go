package mock

import (
	"context"

	"github.com/fwojciec/menurag"
)

var _ menurag.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of menurag.SitemapService.
type SitemapService struct {
	ListURLsFn func(ctx context.Context, sitemapURL string, filter *menurag.URLFilter) ([]string, error)
}

func (s *SitemapService) ListURLs(ctx context.Context, sitemapURL string, filter *menurag.URLFilter) ([]string, error) {
	return s.ListURLsFn(ctx, sitemapURL, filter)
}
