package loclink

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultLocale is assumed for URLs that match no locale patterns.
const DefaultLocale = "en"

// Locales lists the supported non-default locales in detection order.
// The order matters only for ties, and the pattern tables are disjoint,
// so in practice any URL detects the same locale regardless of order.
var Locales = []string{"fr", "es", "de", "it", "ru"}

// localePatterns maps each supported locale to the literal path
// substrings that identify it.
var localePatterns = map[string][]string{
	"fr": {"/fr/", "/fr-fr/", "/french/", "/francais/"},
	"es": {"/es/", "/es-es/", "/spanish/", "/espanol/"},
	"de": {"/de/", "/de-de/", "/german/", "/deutsch/"},
	"it": {"/it/", "/it-it/", "/italian/", "/italiano/"},
	"ru": {"/ru/", "/ru-ru/", "/russian/", "/russkiy/"},
}

// SupportedLocale reports whether locale is one of the locales the
// checker understands. The default locale is not included.
func SupportedLocale(locale string) bool {
	_, ok := localePatterns[locale]
	return ok
}

// DetectLocale returns the locale encoded in a URL's path, or
// DefaultLocale when no pattern matches. Matching is by literal substring
// on the lower-cased path; the first matching locale wins.
func DetectLocale(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultLocale
	}
	path := strings.ToLower(u.Path)
	for _, locale := range Locales {
		for _, pattern := range localePatterns[locale] {
			if strings.Contains(path, pattern) {
				return locale
			}
		}
	}
	return DefaultLocale
}

// localePrefixRe matches a two-letter, optionally region-extended, code
// segment at the start of a path, e.g. /de/ or /fr-fr/.
var localePrefixRe = regexp.MustCompile(`^/([a-z]{2})(?:-[a-z]{2})?/`)

// HasLocalePrefix reports whether the URL path starts with a locale
// segment such as /de/ or /fr-fr/.
func HasLocalePrefix(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return localePrefixRe.MatchString(u.Path)
}

// LocalizedPath reports whether path already starts with the given
// locale segment, i.e. matches /<locale> exactly or /<locale>/...
func LocalizedPath(path, locale string) bool {
	if locale == "" || !strings.HasPrefix(path, "/"+locale) {
		return false
	}
	rest := path[len(locale)+1:]
	return rest == "" || strings.HasPrefix(rest, "/")
}

// fileLinkRe matches URLs that point at downloadable file assets rather
// than HTML pages.
var fileLinkRe = regexp.MustCompile(`(?i)\.(pdf|zip|docx?|xlsx?|pptx?|exe|rar|tar\.gz|7z)$`)

// IsFileLink reports whether the URL points at a file asset.
func IsFileLink(rawURL string) bool {
	return fileLinkRe.MatchString(rawURL)
}

// IsLocalizedFileLink reports whether a file URL already carries the
// locale suffix naming convention for PDF assets, e.g. guide-de.pdf or
// guide_ES.pdf. Matching is case-insensitive.
func IsLocalizedFileLink(rawURL, locale string) bool {
	if !IsFileLink(rawURL) {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	locale = strings.ToLower(locale)
	return strings.HasSuffix(path, "_"+locale+".pdf") || strings.HasSuffix(path, "-"+locale+".pdf")
}

// ExpectedLocalizedURL constructs the URL where the localized variant of
// rawURL should live. For PDF assets the locale suffix goes before the
// extension: _ES for Spanish, -<locale> for everything else. For pages
// the locale segment is inserted at the start of the path. Returns ""
// when the URL is already localized or cannot be parsed.
func ExpectedLocalizedURL(rawURL, locale string) string {
	u, err := url.Parse(rawURL)
	if err != nil || locale == "" {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
		base := u.Path[:len(u.Path)-len(".pdf")]
		if strings.EqualFold(locale, "es") {
			return u.Scheme + "://" + u.Host + base + "_ES.pdf"
		}
		return u.Scheme + "://" + u.Host + base + "-" + locale + ".pdf"
	}
	if !LocalizedPath(u.Path, locale) {
		return u.Scheme + "://" + u.Host + "/" + locale + u.Path
	}
	return ""
}

// NormalizeForComparison reduces a URL to scheme://host/path with the
// trailing slash trimmed. Query and fragment are dropped. Used to decide
// whether two redirect targets are the same page.
func NormalizeForComparison(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.TrimRight(rawURL, "/")
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/")
}

// ValidURL reports whether rawURL is an absolute http or https URL.
func ValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// WithinDomain reports whether host belongs to domain: an exact match or
// a subdomain on a dot boundary. Comparison is case-insensitive.
func WithinDomain(host, domain string) bool {
	host = strings.ToLower(host)
	domain = strings.ToLower(domain)
	if domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
