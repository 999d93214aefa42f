package menurag

import (
	"context"
	"regexp"
	"slices"
)

// SitemapService lists the pages published in a sitemap.
type SitemapService interface {
	// ListURLs returns the <loc> of every URL in the sitemap at sitemapURL,
	// in document order and without duplicates. Sitemap indexes are
	// resolved recursively.
	//
	// If filter is nil, all URLs are returned.
	ListURLs(ctx context.Context, sitemapURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows the restaurant pages taken from a sitemap.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern. Empty keeps all.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern, after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns. Returns nil when both
// are empty and EINVALID when a pattern does not compile.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	var err error
	if f.Include, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if f.Exclude, err = compilePatterns(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

// Match reports whether url passes the filter. A nil filter passes all.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid URL pattern %q: %v", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
