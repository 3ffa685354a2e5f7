package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/loclink"
)

// probeBodyLimit caps how much of a probed response body is drained
// before closing, so connections stay reusable without buffering large
// downloads.
const probeBodyLimit = 1 << 20

// Ensure Prober implements loclink.Prober at compile time.
var _ loclink.Prober = (*Prober)(nil)

// Prober checks URL reachability with single GET requests, following
// redirects and reporting the final status and URL. The response body is
// discarded.
type Prober struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeTimeout sets the timeout for probe requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithProbeTimeout(d time.Duration) ProberOption {
	return func(p *Prober) {
		p.timeout = d
	}
}

// WithProbeUserAgent sets the User-Agent header on probe requests.
// Defaults to DefaultUserAgent if not specified.
func WithProbeUserAgent(ua string) ProberOption {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// NewProber creates a new Prober backed by a pooled HTTP client.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = &http.Client{
		Timeout: p.timeout,
	}

	return p
}

// Probe issues a single GET for url and reports the final status code
// and resolved URL. Transport failures are returned as errors; non-200
// statuses are not, since the caller classifies them.
func (p *Prober) Probe(ctx context.Context, url string) (*loclink.ProbeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, probeBodyLimit))

	return &loclink.ProbeResult{
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
