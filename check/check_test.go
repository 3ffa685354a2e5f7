package check_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/loclink"
	"github.com/fwojciec/loclink/check"
	"github.com/fwojciec/loclink/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeReply scripts the prober's answer for one URL. A zero final
// means the probe ended where it started.
type probeReply struct {
	code  int
	final string
	err   error
}

func proberFor(replies map[string]probeReply) *mock.Prober {
	return &mock.Prober{
		ProbeFn: func(_ context.Context, url string) (*loclink.ProbeResult, error) {
			reply, ok := replies[url]
			if !ok {
				return nil, fmt.Errorf("unexpected probe: %s", url)
			}
			if reply.err != nil {
				return nil, reply.err
			}
			final := reply.final
			if final == "" {
				final = url
			}
			return &loclink.ProbeResult{StatusCode: reply.code, FinalURL: final}, nil
		},
	}
}

// checkerFor builds a Checker whose fetch always yields html and whose
// extractor always yields links, with probes scripted per URL.
func checkerFor(html string, links []loclink.Link, replies map[string]probeReply) *check.Checker {
	return &check.Checker{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) { return html, nil },
			CloseFn: func() error { return nil },
		},
		Prober: proberFor(replies),
		Extractor: &mock.LinkExtractor{
			ExtractFn: func(_, _ string) (*loclink.ExtractResult, error) {
				return &loclink.ExtractResult{Title: "Backup Solution", Links: links}, nil
			},
		},
	}
}

func TestChecker_CheckPage(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed URLs", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		_, err := c.CheckPage(context.Background(), "not-a-url")

		require.Error(t, err)
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
		assert.Equal(t, "Invalid URL format: not-a-url", loclink.ErrorMessage(err))
	})

	t.Run("rejects URLs without a locale prefix", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		_, err := c.CheckPage(context.Background(), "https://www.example.com/backup/")

		require.Error(t, err)
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
		assert.Contains(t, loclink.ErrorMessage(err), "URL must contain locale prefix")
	})

	t.Run("reports unreachable input as an error report", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/backup/"
		c := checkerFor("", nil, map[string]probeReply{
			pageURL: {err: errors.New("dial tcp: connection refused")},
		})

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusError, report.Status)
		assert.Contains(t, report.Message, "Cannot access URL: ")
		assert.Contains(t, report.Message, "connection refused")
		assert.Empty(t, report.Results)
	})

	t.Run("reports non-200 input as an error report", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/gone/"
		c := checkerFor("", nil, map[string]probeReply{
			pageURL: {code: 404},
		})

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusError, report.Status)
		assert.Equal(t, "Cannot access URL: HTTP 404 for "+pageURL, report.Message)
	})

	t.Run("stops with a warning when the input redirects", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/old/"
		finalURL := "https://www.example.com/de/new/"
		c := checkerFor("", nil, map[string]probeReply{
			pageURL: {code: 200, final: finalURL},
		})

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusWarning, report.Status)
		assert.Equal(t, fmt.Sprintf("URL redirects to other link: %s. Input link: %s", finalURL, pageURL), report.Message)
		assert.Empty(t, report.Results)
	})

	t.Run("trailing slash is not a redirect", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/backup"
		c := checkerFor("<html></html>", nil, map[string]probeReply{
			pageURL: {code: 200, final: pageURL + "/"},
		})

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		// Falls through to extraction, which found nothing.
		assert.Equal(t, loclink.StatusWarning, report.Status)
		assert.Equal(t, "No links found on the page "+pageURL, report.Message)
	})

	t.Run("warns when the page has no links", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/empty/"
		c := checkerFor("<html><body></body></html>", nil, map[string]probeReply{
			pageURL: {code: 200},
		})

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusWarning, report.Status)
		assert.Equal(t, "No links found on the page "+pageURL, report.Message)
		assert.Equal(t, "Backup Solution", report.Title)
	})

	t.Run("classifies every extracted link", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/backup/"
		links := []loclink.Link{
			{URL: "https://www.example.com/de/pricing/", Text: "Pricing"},
			{URL: "https://www.example.com/de/missing/", Text: "Missing"},
		}
		c := checkerFor("<html></html>", links, map[string]probeReply{
			pageURL:      {code: 200},
			links[0].URL: {code: 200},
			links[1].URL: {code: 404},
		})

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusSuccess, report.Status)
		assert.Equal(t, "de", report.Locale)
		assert.Equal(t, "Backup Solution", report.Title)
		require.Len(t, report.Results, 2)

		assert.Equal(t, loclink.StatusSuccess, report.Results[0].Status)
		assert.Empty(t, report.Results[0].Issue)
		assert.Equal(t, pageURL, report.Results[0].BaseURL)

		assert.Equal(t, loclink.StatusError, report.Results[1].Status)
		assert.Equal(t, "Link is broken (HTTP 404)", report.Results[1].Issue)

		assert.Equal(t, 2, report.Stats.TotalLinks)
		assert.Equal(t, 1, report.Stats.WorkingLinks)
		assert.Equal(t, 1, report.Stats.BrokenLinks)
		assert.InDelta(t, 50.0, report.Stats.SuccessRate, 0.01)
	})

	t.Run("waits on the domain limiter before each probe", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/backup/"
		links := []loclink.Link{{URL: "https://www.example.com/de/pricing/", Text: "Pricing"}}

		var waited []string
		c := checkerFor("<html></html>", links, map[string]probeReply{
			pageURL:      {code: 200},
			links[0].URL: {code: 200},
		})
		c.Limiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				waited = append(waited, domain)
				return nil
			},
		}

		_, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, []string{"www.example.com", "www.example.com"}, waited)
	})
}

func TestChecker_BrowserFallback(t *testing.T) {
	t.Parallel()

	t.Run("uses the browser when the plain fetch fails", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/app/"
		linkURL := "https://www.example.com/de/pricing/"

		var browserClosed bool
		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("403 for bot traffic")
				},
				CloseFn: func() error { return nil },
			},
			Browser: func() (loclink.Fetcher, error) {
				return &mock.Fetcher{
					FetchFn: func(_ context.Context, _ string) (string, error) {
						return "<html>rendered</html>", nil
					},
					CloseFn: func() error {
						browserClosed = true
						return nil
					},
				}, nil
			},
			Prober: proberFor(map[string]probeReply{
				pageURL: {code: 200},
				linkURL: {code: 200},
			}),
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, _ string) (*loclink.ExtractResult, error) {
					if html != "<html>rendered</html>" {
						return &loclink.ExtractResult{Title: "No title"}, nil
					}
					return &loclink.ExtractResult{
						Title: "App",
						Links: []loclink.Link{{URL: linkURL, Text: "Pricing"}},
					}, nil
				},
			},
		}

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusSuccess, report.Status)
		require.Len(t, report.Results, 1)
		assert.True(t, browserClosed, "browser fetcher should be closed after the page")
	})

	t.Run("uses the browser when the plain fetch yields no links", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/app/"
		linkURL := "https://www.example.com/de/pricing/"

		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html>shell</html>", nil
				},
				CloseFn: func() error { return nil },
			},
			Browser: func() (loclink.Fetcher, error) {
				return &mock.Fetcher{
					FetchFn: func(_ context.Context, _ string) (string, error) {
						return "<html>rendered</html>", nil
					},
					CloseFn: func() error { return nil },
				}, nil
			},
			Prober: proberFor(map[string]probeReply{
				pageURL: {code: 200},
				linkURL: {code: 200},
			}),
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(html, _ string) (*loclink.ExtractResult, error) {
					if html == "<html>shell</html>" {
						return &loclink.ExtractResult{Title: "App"}, nil
					}
					return &loclink.ExtractResult{
						Title: "App",
						Links: []loclink.Link{{URL: linkURL, Text: "Pricing"}},
					}, nil
				},
			},
		}

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusSuccess, report.Status)
		require.Len(t, report.Results, 1)
	})

	t.Run("reports a browser failure as a page error", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://www.example.com/de/app/"
		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("plain fetch failed")
				},
				CloseFn: func() error { return nil },
			},
			Browser: func() (loclink.Fetcher, error) {
				return nil, errors.New("chrome not found")
			},
			Prober: proberFor(map[string]probeReply{pageURL: {code: 200}}),
			Extractor: &mock.LinkExtractor{
				ExtractFn: func(_, _ string) (*loclink.ExtractResult, error) {
					return &loclink.ExtractResult{}, nil
				},
			},
		}

		report, err := c.CheckPage(context.Background(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, loclink.StatusError, report.Status)
		assert.Equal(t, "Error: chrome not found", report.Message)
	})
}

func TestChecker_CheckPages(t *testing.T) {
	t.Parallel()

	t.Run("bad URLs become error reports without aborting the batch", func(t *testing.T) {
		t.Parallel()

		goodURL := "https://www.example.com/de/backup/"
		c := checkerFor("<html></html>", nil, map[string]probeReply{
			goodURL: {code: 200},
		})

		reports, err := c.CheckPages(context.Background(), []string{
			"",
			"not-a-url",
			"https://www.example.com/backup/",
			goodURL,
		})
		require.NoError(t, err)
		require.Len(t, reports, 4)

		assert.Equal(t, loclink.StatusError, reports[0].Status)
		assert.Equal(t, "Empty URL provided", reports[0].Message)

		assert.Equal(t, loclink.StatusError, reports[1].Status)
		assert.Equal(t, "Invalid URL format: not-a-url", reports[1].Message)

		assert.Equal(t, loclink.StatusError, reports[2].Status)
		assert.Contains(t, reports[2].Message, "URL must contain locale prefix")

		assert.Equal(t, loclink.StatusWarning, reports[3].Status)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &check.Checker{}
		_, err := c.CheckPages(ctx, []string{"https://www.example.com/de/"})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestChecker_CheckLocales(t *testing.T) {
	t.Parallel()

	t.Run("builds and checks a variant per locale", func(t *testing.T) {
		t.Parallel()

		base := "https://www.example.com/backup/"
		c := checkerFor("<html></html>", nil, map[string]probeReply{
			"https://www.example.com/de/backup/": {code: 200},
			"https://www.example.com/fr/backup/": {code: 200},
		})

		reports, err := c.CheckLocales(context.Background(), base, []string{"de", "fr"})
		require.NoError(t, err)
		require.Len(t, reports, 2)

		assert.Equal(t, "https://www.example.com/de/backup/", reports[0].URL)
		assert.Equal(t, "de", reports[0].Locale)
		assert.Equal(t, "https://www.example.com/fr/backup/", reports[1].URL)
		assert.Equal(t, "fr", reports[1].Locale)
	})

	t.Run("rejects a base URL that is already localized", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		_, err := c.CheckLocales(context.Background(), "https://www.example.com/de/backup/", []string{"fr"})

		require.Error(t, err)
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
		assert.Contains(t, loclink.ErrorMessage(err), "must not contain a locale prefix")
	})

	t.Run("rejects unsupported locales", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		_, err := c.CheckLocales(context.Background(), "https://www.example.com/backup/", []string{"xx"})

		require.Error(t, err)
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
		assert.Equal(t, "Unsupported localization: xx", loclink.ErrorMessage(err))
	})

	t.Run("rejects an empty locale selection", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		_, err := c.CheckLocales(context.Background(), "https://www.example.com/backup/", nil)

		require.Error(t, err)
		assert.Equal(t, loclink.EINVALID, loclink.ErrorCode(err))
	})
}
