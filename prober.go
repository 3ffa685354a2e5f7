package loclink

import (
	"context"
	"strings"
)

// ProbeResult describes the observed HTTP behavior of a URL.
type ProbeResult struct {
	// StatusCode is the status of the final response after following
	// redirects.
	StatusCode int

	// FinalURL is the URL that ultimately served the response.
	FinalURL string
}

// Redirected reports whether the probe ended on a different URL than the
// one requested, ignoring trailing slashes.
func (r *ProbeResult) Redirected(requested string) bool {
	return strings.TrimRight(r.FinalURL, "/") != strings.TrimRight(requested, "/")
}

// Prober checks URL reachability. It validates input pages before
// analysis and probes individual links during classification.
type Prober interface {
	// Probe issues a single GET for url, following redirects, and
	// reports the final status code and resolved URL. Transport
	// failures (timeout, DNS, TLS, connection reset) are returned as
	// errors; non-200 statuses are not.
	Probe(ctx context.Context, url string) (*ProbeResult, error)
}
