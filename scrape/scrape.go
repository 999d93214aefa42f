// Package scrape fetches restaurant pages and lifts their menus into raw
// records.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/fwojciec/menurag"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sites fetched in parallel.
const DefaultConcurrency = 4

// Scraper fetches every site and extracts its menu items.
type Scraper struct {
	Fetcher     menurag.Fetcher
	Extractor   menurag.MenuExtractor
	RateLimiter menurag.DomainLimiter
	Logger      *slog.Logger
	Concurrency int
}

// Result summarizes a scrape.
type Result struct {
	Scraped int
	Failed  int
	Items   int
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Site      menurag.Site
	Items     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

type siteResult struct {
	position   int
	restaurant menurag.RawRestaurant
	err        error
}

// Scrape fetches sites concurrently and returns one raw restaurant per
// successfully scraped site, in input order. A site that cannot be fetched
// or parsed is logged and left out; it never fails the whole scrape. The
// returned error is non-nil only when ctx ends first.
func (s *Scraper) Scrape(ctx context.Context, sites []menurag.Site, progress ProgressFunc) ([]menurag.RawRestaurant, *Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	total := len(sites)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan siteResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, site := range sites {
			g.Go(func() error {
				resultCh <- s.scrapeSite(gctx, i, site)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]siteResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			Site:      sites[r.position],
		}
		if r.err != nil {
			logger.Warn("skipping site", "name", sites[r.position].Name, "url", sites[r.position].URL, "err", r.err)
			event.Type = ProgressFailed
			event.Error = r.err
		} else {
			event.Type = ProgressCompleted
			event.Items = len(r.restaurant.MenuItems)
		}
		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	restaurants := []menurag.RawRestaurant{}
	result := &Result{}
	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}
		result.Scraped++
		result.Items += len(r.restaurant.MenuItems)
		restaurants = append(restaurants, r.restaurant)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	logger.Info("scrape finished", "sites", total, "scraped", result.Scraped, "failed", result.Failed, "items", result.Items)

	return restaurants, result, nil
}

// scrapeSite fetches and extracts a single site.
func (s *Scraper) scrapeSite(ctx context.Context, position int, site menurag.Site) siteResult {
	result := siteResult{position: position}

	if err := site.Validate(); err != nil {
		result.err = err
		return result
	}

	if s.RateLimiter != nil {
		u, err := url.Parse(site.URL)
		if err != nil {
			result.err = menurag.Errorf(menurag.EINVALID, "invalid site URL %q: %v", site.URL, err)
			return result
		}
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			result.err = err
			return result
		}
	}

	html, err := s.Fetcher.Fetch(ctx, site.URL)
	if err != nil {
		result.err = err
		return result
	}

	items, err := s.Extractor.ExtractMenuItems(html)
	if err != nil {
		result.err = err
		return result
	}

	result.restaurant = site.Restaurant()
	result.restaurant.MenuItems = append(result.restaurant.MenuItems, items...)
	return result
}
