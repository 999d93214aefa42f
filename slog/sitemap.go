package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/menurag"
)

// Ensure LoggingSitemapService implements menurag.SitemapService.
var _ menurag.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging. Listings log
// at debug level with the number of URLs shaped like restaurant pages;
// failures log a warning.
type LoggingSitemapService struct {
	next   menurag.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next menurag.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// ListURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) ListURLs(ctx context.Context, sitemapURL string, filter *menurag.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("sitemap failed",
				"url", sitemapURL,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		var restaurants int
		for _, u := range urls {
			if _, ok := menurag.SiteFromURL(u); ok {
				restaurants++
			}
		}
		s.logger.Debug("sitemap",
			"url", sitemapURL,
			"count", len(urls),
			"restaurants", restaurants,
			"filtered", filter != nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.ListURLs(ctx, sitemapURL, filter)
}
