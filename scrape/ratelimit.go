package scrape

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/menurag"
	"golang.org/x/time/rate"
)

var _ menurag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests to restaurant hosts with one token bucket
// per host. Host names are compared case-insensitively and without a
// leading "www.", so brand pages linked both ways share a bucket.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter allows rps requests per second to each host with a burst
// of 1. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until host may be requested again, or ctx ends.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := hostKey(host)

	d.mu.Lock()
	bucket, ok := d.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(d.limit, 1)
		d.buckets[key] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}

func hostKey(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
