package loclink

import "context"

// CheckService runs localization checks. Implementations fetch each input
// page, extract its main-content links, classify every link, and fold the
// results into reports. Links are checked sequentially; one input page
// never affects the classification of another.
type CheckService interface {
	// CheckPage checks a single locale-prefixed page URL. Invalid
	// input (malformed URL, missing locale prefix) returns EINVALID.
	// Fetch and network failures are reported through the page report
	// status, not as errors.
	CheckPage(ctx context.Context, pageURL string) (*PageReport, error)

	// CheckPages checks several page URLs in order. Per-page
	// validation failures become error reports so a bad URL does not
	// abort the rest of the batch.
	CheckPages(ctx context.Context, pageURLs []string) ([]*PageReport, error)

	// CheckLocales builds the localized variant of baseURL for each
	// locale and checks them in order. The base URL must not itself
	// carry a locale prefix.
	CheckLocales(ctx context.Context, baseURL string, locales []string) ([]*PageReport, error)
}

// DomainLimiter provides per-domain rate limiting. The checker waits on
// it before every probe so link checking stays polite to the target site.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
