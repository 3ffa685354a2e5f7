package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/loclink"
)

// Ensure LoggingExtractor implements loclink.LinkExtractor.
var _ loclink.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with logging. Pages that hit
// the link cap produce a warning naming the dropped count.
type LoggingExtractor struct {
	next   loclink.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next loclink.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the extraction outcome and delegates to the wrapped
// extractor.
func (e *LoggingExtractor) Extract(html, baseURL string) (result *loclink.ExtractResult, err error) {
	defer func(begin time.Time) {
		links := 0
		if result != nil {
			links = len(result.Links)
		}
		e.logger.Info("extract",
			"url", baseURL,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
		if result != nil && result.Truncated > 0 {
			e.logger.Warn("link cap reached",
				"url", baseURL,
				"kept", links,
				"dropped", result.Truncated,
			)
		}
	}(time.Now())
	return e.next.Extract(html, baseURL)
}
