package mock

import (
	"context"

	"github.com/fwojciec/loclink"
)

var _ loclink.Prober = (*Prober)(nil)

// Prober is a mock implementation of loclink.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context, url string) (*loclink.ProbeResult, error)
}

func (p *Prober) Probe(ctx context.Context, url string) (*loclink.ProbeResult, error) {
	return p.ProbeFn(ctx, url)
}
