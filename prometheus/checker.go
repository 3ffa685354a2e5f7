// Package prometheus provides Prometheus instrumentation for check operations.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fwojciec/loclink"
)

// Ensure MetricsCheckService implements loclink.CheckService.
var _ loclink.CheckService = (*MetricsCheckService)(nil)

// MetricsCheckService wraps a CheckService and records metrics for each
// operation. The service owns its registry so that Handler can serve it
// without touching global state.
type MetricsCheckService struct {
	next loclink.CheckService
	reg  *prometheus.Registry

	checksTotal   *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	pagesChecked  prometheus.Counter
	linksChecked  *prometheus.CounterVec
}

// NewMetricsCheckService creates a new MetricsCheckService.
func NewMetricsCheckService(next loclink.CheckService) *MetricsCheckService {
	s := &MetricsCheckService{
		next: next,
		reg:  prometheus.NewRegistry(),
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loclink_checks_total",
				Help: "Total number of check operations by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loclink_check_duration_seconds",
				Help:    "Duration of check operations in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		pagesChecked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "loclink_pages_checked_total",
				Help: "Total number of pages checked.",
			},
		),
		linksChecked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loclink_links_checked_total",
				Help: "Total number of links classified by status.",
			},
			[]string{"status"},
		),
	}
	s.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.checksTotal,
		s.checkDuration,
		s.pagesChecked,
		s.linksChecked,
	)
	return s
}

// Handler returns an HTTP handler serving the collected metrics.
func (s *MetricsCheckService) Handler() http.Handler {
	return promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})
}

// CheckPage delegates to the wrapped service and records the outcome.
func (s *MetricsCheckService) CheckPage(ctx context.Context, pageURL string) (*loclink.PageReport, error) {
	begin := time.Now()
	report, err := s.next.CheckPage(ctx, pageURL)
	var reports []*loclink.PageReport
	if report != nil {
		reports = append(reports, report)
	}
	s.record(loclink.ModeSingle, begin, reports, err)
	return report, err
}

// CheckPages delegates to the wrapped service and records the outcome.
func (s *MetricsCheckService) CheckPages(ctx context.Context, pageURLs []string) ([]*loclink.PageReport, error) {
	begin := time.Now()
	reports, err := s.next.CheckPages(ctx, pageURLs)
	s.record(loclink.ModeBulk, begin, reports, err)
	return reports, err
}

// CheckLocales delegates to the wrapped service and records the outcome.
func (s *MetricsCheckService) CheckLocales(ctx context.Context, baseURL string, locales []string) ([]*loclink.PageReport, error) {
	begin := time.Now()
	reports, err := s.next.CheckLocales(ctx, baseURL, locales)
	s.record(loclink.ModeMulti, begin, reports, err)
	return reports, err
}

func (s *MetricsCheckService) record(mode loclink.Mode, begin time.Time, reports []*loclink.PageReport, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.checksTotal.WithLabelValues(string(mode), outcome).Inc()
	s.checkDuration.WithLabelValues(string(mode)).Observe(time.Since(begin).Seconds())
	for _, report := range reports {
		s.pagesChecked.Inc()
		for _, result := range report.Results {
			s.linksChecked.WithLabelValues(string(result.Status)).Inc()
		}
	}
}
