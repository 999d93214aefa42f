package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/menurag"
)

// Ensure SitemapService implements menurag.SitemapService.
var _ menurag.SitemapService = (*SitemapService)(nil)

// SitemapService lists URLs from XML sitemaps via HTTP.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used. Requests carry
// ChromeUserAgent.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: ChromeUserAgent}
}

// ListURLs returns every URL in the sitemap at sitemapURL in document order.
// Sitemap indexes are followed recursively; each nested sitemap is fetched
// once and duplicate URLs are dropped. Returns an empty slice (not nil)
// when nothing matches.
func (s *SitemapService) ListURLs(ctx context.Context, sitemapURL string, filter *menurag.URLFilter) ([]string, error) {
	if strings.TrimSpace(sitemapURL) == "" {
		return nil, menurag.Errorf(menurag.EINVALID, "sitemap URL required")
	}

	urls, err := s.processSitemap(ctx, sitemapURL, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	out := []string{}
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if seen[u] || !filter.Match(u) {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := get(ctx, s.client, sitemapURL, s.userAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, menurag.Errorf(menurag.EMALFORMED, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}

	return parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var allURLs []string

	for _, loc := range locs(root, "sitemap") {
		urls, err := s.processSitemap(ctx, loc, seen)
		if err != nil {
			return nil, err
		}
		allURLs = append(allURLs, urls...)
	}

	return allURLs, nil
}

// parseURLSet extracts URLs from a <urlset> element.
func parseURLSet(root *etree.Element) []string {
	return locs(root, "url")
}

// locs returns the trimmed, non-empty <loc> text of each child named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}
