package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/loclink"
)

// Ensure LoggingProber implements loclink.Prober.
var _ loclink.Prober = (*LoggingProber)(nil)

// LoggingProber wraps a Prober with per-request logging.
type LoggingProber struct {
	next   loclink.Prober
	logger *slog.Logger
}

// NewLoggingProber creates a new LoggingProber.
func NewLoggingProber(next loclink.Prober, logger *slog.Logger) *LoggingProber {
	return &LoggingProber{next: next, logger: logger}
}

// Probe delegates to the wrapped prober and logs the result.
func (p *LoggingProber) Probe(ctx context.Context, url string) (result *loclink.ProbeResult, err error) {
	defer func(begin time.Time) {
		code := 0
		if result != nil {
			code = result.StatusCode
		}
		p.logger.Info("probe",
			"url", url,
			"status_code", code,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Probe(ctx, url)
}
