package prometheus_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/loclink"
	"github.com/fwojciec/loclink/mock"
	locprom "github.com/fwojciec/loclink/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, svc *locprom.MetricsCheckService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	svc.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsCheckService_CheckPage(t *testing.T) {
	t.Parallel()

	t.Run("counts checks, pages and links", func(t *testing.T) {
		t.Parallel()

		inner := &mock.CheckService{
			CheckPageFn: func(ctx context.Context, pageURL string) (*loclink.PageReport, error) {
				return &loclink.PageReport{
					URL:    pageURL,
					Status: loclink.StatusSuccess,
					Results: []loclink.CheckResult{
						{URL: "https://www.example.com/de/pricing/", Status: loclink.StatusSuccess},
						{URL: "https://www.example.com/fr/pricing/", Status: loclink.StatusLocalizationDefect},
						{URL: "https://www.example.com/de/legal/", Status: loclink.StatusSuccess},
					},
				}, nil
			},
		}
		svc := locprom.NewMetricsCheckService(inner)

		report, err := svc.CheckPage(context.Background(), "https://www.example.com/de/backup/")
		require.NoError(t, err)
		require.NotNil(t, report)

		body := scrape(t, svc)
		assert.Contains(t, body, `loclink_checks_total{mode="single",outcome="ok"} 1`)
		assert.Contains(t, body, "loclink_pages_checked_total 1")
		assert.Contains(t, body, `loclink_links_checked_total{status="success"} 2`)
		assert.Contains(t, body, `loclink_links_checked_total{status="localization_defect"} 1`)
		assert.Contains(t, body, `loclink_check_duration_seconds_count{mode="single"} 1`)
	})

	t.Run("counts errors separately", func(t *testing.T) {
		t.Parallel()

		inner := &mock.CheckService{
			CheckPageFn: func(ctx context.Context, pageURL string) (*loclink.PageReport, error) {
				return nil, errors.New("fetch failed")
			},
		}
		svc := locprom.NewMetricsCheckService(inner)

		_, err := svc.CheckPage(context.Background(), "https://www.example.com/de/backup/")
		require.Error(t, err)

		body := scrape(t, svc)
		assert.Contains(t, body, `loclink_checks_total{mode="single",outcome="error"} 1`)
		assert.NotContains(t, body, "loclink_pages_checked_total 1")
	})
}

func TestMetricsCheckService_CheckPages(t *testing.T) {
	t.Parallel()

	inner := &mock.CheckService{
		CheckPagesFn: func(ctx context.Context, pageURLs []string) ([]*loclink.PageReport, error) {
			reports := make([]*loclink.PageReport, len(pageURLs))
			for i, u := range pageURLs {
				reports[i] = &loclink.PageReport{
					URL:    u,
					Status: loclink.StatusSuccess,
					Results: []loclink.CheckResult{
						{URL: "https://www.example.com/de/pricing/", Status: loclink.StatusSuccess},
					},
				}
			}
			return reports, nil
		},
	}
	svc := locprom.NewMetricsCheckService(inner)

	_, err := svc.CheckPages(context.Background(), []string{
		"https://www.example.com/de/backup/",
		"https://www.example.com/de/recovery/",
	})
	require.NoError(t, err)

	body := scrape(t, svc)
	assert.Contains(t, body, `loclink_checks_total{mode="bulk",outcome="ok"} 1`)
	assert.Contains(t, body, "loclink_pages_checked_total 2")
	assert.Contains(t, body, `loclink_links_checked_total{status="success"} 2`)
}

func TestMetricsCheckService_CheckLocales(t *testing.T) {
	t.Parallel()

	inner := &mock.CheckService{
		CheckLocalesFn: func(ctx context.Context, baseURL string, locales []string) ([]*loclink.PageReport, error) {
			reports := make([]*loclink.PageReport, len(locales))
			for i, locale := range locales {
				reports[i] = &loclink.PageReport{Locale: locale, Status: loclink.StatusSuccess}
			}
			return reports, nil
		},
	}
	svc := locprom.NewMetricsCheckService(inner)

	_, err := svc.CheckLocales(context.Background(), "https://www.example.com/backup/", []string{"de", "fr", "it"})
	require.NoError(t, err)

	body := scrape(t, svc)
	assert.Contains(t, body, `loclink_checks_total{mode="multi",outcome="ok"} 1`)
	assert.Contains(t, body, "loclink_pages_checked_total 3")
}
