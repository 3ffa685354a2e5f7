// Package check implements the link checking pipeline. It coordinates
// probing, fetching, extraction, and classification for localized pages
// and folds the outcomes into page reports.
package check

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/loclink"
)

var _ loclink.CheckService = (*Checker)(nil)

// BrowserFactory opens a browser-backed fetcher. The checker invokes it
// lazily, once per page that needs it, and closes the fetcher before the
// check returns.
type BrowserFactory func() (loclink.Fetcher, error)

// Checker runs localization checks against live pages. Pages and links
// are processed sequentially; a slow target slows the run rather than
// hammering the site.
type Checker struct {
	// Fetcher retrieves page HTML over plain HTTP.
	Fetcher loclink.Fetcher

	// Browser, when set, supplies the fallback fetcher for pages whose
	// links only materialize after scripts run.
	Browser BrowserFactory

	Prober    loclink.Prober
	Extractor loclink.LinkExtractor

	// Limiter paces probes per target domain. Optional.
	Limiter loclink.DomainLimiter

	// SiteDomains are the domains the checked site lives on; links
	// pointing elsewhere are flagged with a warning instead of being
	// held to localization rules. When empty, each input page's own
	// host is the policy domain.
	SiteDomains []string
}

// CheckPage checks a single locale-prefixed page URL.
func (c *Checker) CheckPage(ctx context.Context, pageURL string) (*loclink.PageReport, error) {
	pageURL = strings.TrimSpace(pageURL)
	if !loclink.ValidURL(pageURL) {
		return nil, loclink.Errorf(loclink.EINVALID, "Invalid URL format: %s", pageURL)
	}
	if !loclink.HasLocalePrefix(pageURL) {
		return nil, loclink.Errorf(loclink.EINVALID, "URL must contain locale prefix (e.g., /de/, /fr/): %s", pageURL)
	}
	return c.checkPage(ctx, pageURL), nil
}

// CheckPages checks several page URLs in order. Validation failures
// become error reports so one bad URL does not abort the batch.
func (c *Checker) CheckPages(ctx context.Context, pageURLs []string) ([]*loclink.PageReport, error) {
	reports := make([]*loclink.PageReport, 0, len(pageURLs))
	for _, pageURL := range pageURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pageURL = strings.TrimSpace(pageURL)
		switch {
		case pageURL == "":
			reports = append(reports, errorReport(pageURL, "Empty URL provided"))
		case !loclink.ValidURL(pageURL):
			reports = append(reports, errorReport(pageURL, fmt.Sprintf("Invalid URL format: %s", pageURL)))
		case !loclink.HasLocalePrefix(pageURL):
			reports = append(reports, errorReport(pageURL, fmt.Sprintf("URL must contain locale prefix (e.g., /de/, /fr/): %s", pageURL)))
		default:
			reports = append(reports, c.checkPage(ctx, pageURL))
		}
	}
	return reports, nil
}

// CheckLocales builds the localized variant of baseURL for each locale
// and checks them in order.
func (c *Checker) CheckLocales(ctx context.Context, baseURL string, locales []string) ([]*loclink.PageReport, error) {
	baseURL = strings.TrimSpace(baseURL)
	if !loclink.ValidURL(baseURL) {
		return nil, loclink.Errorf(loclink.EINVALID, "Invalid URL format: %s", baseURL)
	}
	if loclink.HasLocalePrefix(baseURL) {
		return nil, loclink.Errorf(loclink.EINVALID, "Base URL must not contain a locale prefix: %s", baseURL)
	}
	if len(locales) == 0 {
		return nil, loclink.Errorf(loclink.EINVALID, "Select at least one localization.")
	}
	for _, locale := range locales {
		if !loclink.SupportedLocale(locale) {
			return nil, loclink.Errorf(loclink.EINVALID, "Unsupported localization: %s", locale)
		}
	}

	reports := make([]*loclink.PageReport, 0, len(locales))
	for _, locale := range locales {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reports = append(reports, c.checkPage(ctx, loclink.ExpectedLocalizedURL(baseURL, locale)))
	}
	return reports, nil
}

// checkPage runs the full pipeline for one page. Failures surface
// through the report status, never as an error.
func (c *Checker) checkPage(ctx context.Context, pageURL string) (report *loclink.PageReport) {
	report = &loclink.PageReport{URL: pageURL, Locale: loclink.DetectLocale(pageURL)}
	defer func(begin time.Time) { report.Elapsed = time.Since(begin) }(time.Now())

	// The input URL must resolve cleanly before any links are checked.
	probe, err := c.probe(ctx, pageURL)
	if err != nil {
		report.Status = loclink.StatusError
		report.Message = fmt.Sprintf("Cannot access URL: %s", err)
		return report
	}
	if probe.StatusCode != http.StatusOK {
		report.Status = loclink.StatusError
		report.Message = fmt.Sprintf("Cannot access URL: HTTP %d for %s", probe.StatusCode, pageURL)
		return report
	}
	if probe.Redirected(pageURL) {
		report.Status = loclink.StatusWarning
		report.Message = fmt.Sprintf("URL redirects to other link: %s. Input link: %s", probe.FinalURL, pageURL)
		return report
	}

	extracted, err := c.extract(ctx, pageURL)
	if err != nil {
		report.Status = loclink.StatusError
		report.Message = fmt.Sprintf("Error: %s", err)
		return report
	}
	report.Title = extracted.Title
	if len(extracted.Links) == 0 {
		report.Status = loclink.StatusWarning
		report.Message = fmt.Sprintf("No links found on the page %s", pageURL)
		return report
	}

	domains := c.SiteDomains
	if len(domains) == 0 {
		if u, err := url.Parse(pageURL); err == nil {
			domains = []string{u.Host}
		}
	}

	results := make([]loclink.CheckResult, 0, len(extracted.Links))
	for _, link := range extracted.Links {
		if ctx.Err() != nil {
			break
		}
		results = append(results, c.classify(ctx, link, pageURL, report.Locale, domains))
	}
	report.Results = results
	report.Stats = loclink.ComputePageStats(results)
	report.Status = loclink.StatusSuccess
	return report
}

// extract fetches the page HTML and pulls its links, falling back to the
// browser fetcher when the plain fetch fails or yields no links.
func (c *Checker) extract(ctx context.Context, pageURL string) (*loclink.ExtractResult, error) {
	var plain *loclink.ExtractResult
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err == nil {
		if plain, err = c.Extractor.Extract(html, pageURL); err == nil && len(plain.Links) > 0 {
			return plain, nil
		}
	}

	if c.Browser == nil {
		if plain != nil {
			return plain, nil
		}
		return nil, err
	}

	browser, err := c.Browser()
	if err != nil {
		return nil, err
	}
	defer func() { _ = browser.Close() }()

	html, err = browser.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.Extractor.Extract(html, pageURL)
}

// probe waits out the domain's rate limit and then probes the URL.
func (c *Checker) probe(ctx context.Context, rawURL string) (*loclink.ProbeResult, error) {
	if c.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}
	return c.Prober.Probe(ctx, rawURL)
}

func errorReport(pageURL, message string) *loclink.PageReport {
	return &loclink.PageReport{
		URL:     pageURL,
		Locale:  loclink.DetectLocale(pageURL),
		Status:  loclink.StatusError,
		Message: message,
	}
}
