package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/loclink"
)

// Ensure LoggingCheckService implements loclink.CheckService.
var _ loclink.CheckService = (*LoggingCheckService)(nil)

// LoggingCheckService wraps a CheckService with progress logging.
type LoggingCheckService struct {
	next   loclink.CheckService
	logger *slog.Logger
}

// NewLoggingCheckService creates a new LoggingCheckService.
func NewLoggingCheckService(next loclink.CheckService, logger *slog.Logger) *LoggingCheckService {
	return &LoggingCheckService{next: next, logger: logger}
}

// CheckPage delegates to the wrapped service and logs the outcome.
func (s *LoggingCheckService) CheckPage(ctx context.Context, pageURL string) (report *loclink.PageReport, err error) {
	defer func(begin time.Time) {
		status, links := "", 0
		if report != nil {
			status, links = string(report.Status), report.Stats.TotalLinks
		}
		s.logger.Info("check page",
			"url", pageURL,
			"status", status,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CheckPage(ctx, pageURL)
}

// CheckPages delegates to the wrapped service and logs the batch outcome.
func (s *LoggingCheckService) CheckPages(ctx context.Context, pageURLs []string) (reports []*loclink.PageReport, err error) {
	defer func(begin time.Time) {
		s.logger.Info("check pages",
			"count", len(pageURLs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CheckPages(ctx, pageURLs)
}

// CheckLocales delegates to the wrapped service and logs the outcome.
func (s *LoggingCheckService) CheckLocales(ctx context.Context, baseURL string, locales []string) (reports []*loclink.PageReport, err error) {
	defer func(begin time.Time) {
		s.logger.Info("check locales",
			"url", baseURL,
			"locales", strings.Join(locales, ","),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CheckLocales(ctx, baseURL, locales)
}
