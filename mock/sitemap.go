package mock

import (
	"context"

	"github.com/fwojciec/loclink"
)

var _ loclink.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of loclink.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, domain string, filter *loclink.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, domain string, filter *loclink.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, domain, filter)
}
