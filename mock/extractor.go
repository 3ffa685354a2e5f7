package mock

import "github.com/fwojciec/loclink"

var _ loclink.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of loclink.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(html, baseURL string) (*loclink.ExtractResult, error)
}

func (e *LinkExtractor) Extract(html, baseURL string) (*loclink.ExtractResult, error) {
	return e.ExtractFn(html, baseURL)
}
