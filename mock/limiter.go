package mock

import (
	"context"

	"github.com/fwojciec/menurag"
)

var _ menurag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of menurag.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
