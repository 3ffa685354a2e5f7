package mock

import (
	"context"

	"github.com/fwojciec/loclink"
)

var _ loclink.CheckService = (*CheckService)(nil)

// CheckService is a mock implementation of loclink.CheckService.
type CheckService struct {
	CheckPageFn    func(ctx context.Context, pageURL string) (*loclink.PageReport, error)
	CheckPagesFn   func(ctx context.Context, pageURLs []string) ([]*loclink.PageReport, error)
	CheckLocalesFn func(ctx context.Context, baseURL string, locales []string) ([]*loclink.PageReport, error)
}

func (s *CheckService) CheckPage(ctx context.Context, pageURL string) (*loclink.PageReport, error) {
	return s.CheckPageFn(ctx, pageURL)
}

func (s *CheckService) CheckPages(ctx context.Context, pageURLs []string) ([]*loclink.PageReport, error) {
	return s.CheckPagesFn(ctx, pageURLs)
}

func (s *CheckService) CheckLocales(ctx context.Context, baseURL string, locales []string) ([]*loclink.PageReport, error) {
	return s.CheckLocalesFn(ctx, baseURL, locales)
}
