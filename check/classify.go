package check

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fwojciec/loclink"
)

// classify decides the status of one extracted link. Each link gets a
// single best-effort probe; a second probe happens only when a
// non-localized link has an expected localized variant to look for.
func (c *Checker) classify(ctx context.Context, link loclink.Link, pageURL, locale string, domains []string) loclink.CheckResult {
	result := loclink.CheckResult{URL: link.URL, LinkText: link.Text, BaseURL: pageURL}

	probe, err := c.probe(ctx, link.URL)
	if err != nil {
		result.Status = loclink.StatusError
		result.Issue = fmt.Sprintf("Error checking link: %s", err)
		return result
	}
	result.StatusCode = probe.StatusCode

	if probe.StatusCode != http.StatusOK {
		result.Status = loclink.StatusError
		result.Issue = fmt.Sprintf("Link is broken (HTTP %d)", probe.StatusCode)
		return result
	}

	// Localization rules only apply to links on the checked site.
	if !onPolicyDomain(link.URL, domains) {
		result.Status = loclink.StatusWarning
		result.Issue = "External link - localization rules not applicable"
		return result
	}

	// Pages in the default locale have no localized variant to demand.
	if locale == loclink.DefaultLocale {
		result.Status = loclink.StatusSuccess
		return result
	}

	if loclink.IsLocalizedFileLink(link.URL, locale) || localizedPage(link.URL, locale) {
		// Already localized. The probe followed redirects, so only the
		// final URL needs comparing.
		if probe.Redirected(link.URL) {
			result.Issue = fmt.Sprintf("Redirected to: %s", probe.FinalURL)
		}
		result.Status = loclink.StatusSuccess
		return result
	}

	return c.classifyNonLocalized(ctx, link, locale, result)
}

// classifyNonLocalized handles links that do not carry the page's
// locale: a localized variant may exist, and if it does the link should
// point at it.
func (c *Checker) classifyNonLocalized(ctx context.Context, link loclink.Link, locale string, result loclink.CheckResult) loclink.CheckResult {
	expected := loclink.ExpectedLocalizedURL(link.URL, locale)
	if expected == "" || expected == link.URL {
		result.Status = loclink.StatusSuccess
		result.Issue = fmt.Sprintf("No localized version exists - %s", expected)
		return result
	}

	probe, err := c.probe(ctx, expected)
	if err != nil {
		// An unreachable variant means there is nothing to link to.
		result.Status = loclink.StatusSuccess
		result.Issue = fmt.Sprintf("No localized version exists - %s", expected)
		return result
	}
	if probe.StatusCode != http.StatusOK {
		result.Status = loclink.StatusSuccess
		result.StatusCode = 0
		result.Issue = fmt.Sprintf("No localized version exists - %s, returns status code: %d", expected, probe.StatusCode)
		return result
	}

	final := loclink.NormalizeForComparison(probe.FinalURL)
	original := loclink.NormalizeForComparison(link.URL)
	variant := loclink.NormalizeForComparison(expected)

	switch {
	case final != original && final != variant:
		result.Status = loclink.StatusSuccess
		result.Issue = fmt.Sprintf("Final link - %s is different with non-localized link and expected localized link %s", probe.FinalURL, expected)
	case final != original:
		// The variant serves a real page of its own; the link should
		// point there.
		result.Status = loclink.StatusLocalizationDefect
		result.Issue = fmt.Sprintf("Should link to localized version: %s", expected)
	default:
		// The variant redirects back to the default version.
		result.Status = loclink.StatusSuccess
		result.Issue = fmt.Sprintf("No localized version exists - %s; so redirects to default version: %s", expected, probe.FinalURL)
	}
	return result
}

// localizedPage reports whether the URL path already starts with the
// locale segment.
func localizedPage(rawURL, locale string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return loclink.LocalizedPath(u.Path, locale)
}

// onPolicyDomain reports whether the URL's host belongs to any of the
// checked site's domains.
func onPolicyDomain(rawURL string, domains []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	for _, domain := range domains {
		if loclink.WithinDomain(u.Host, domain) {
			return true
		}
	}
	return false
}
