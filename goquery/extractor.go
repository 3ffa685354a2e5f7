package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/loclink"
)

// DefaultMaxLinks caps how many links one page can contribute.
const DefaultMaxLinks = 200

// NoTitle is reported when a page carries no usable <title>.
const NoTitle = "No title"

// excludePatterns matches hrefs that are never worth checking: script and
// data URIs, contact schemes, in-page anchors, document downloads, and
// paginated duplicates.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)data:`),
	regexp.MustCompile(`(?i)mailto:`),
	regexp.MustCompile(`(?i)tel:`),
	regexp.MustCompile(`#`),
	regexp.MustCompile(`(?i)\.doc$`),
	regexp.MustCompile(`(?i)\.docx$`),
	regexp.MustCompile(`(?i)\.zip$`),
	regexp.MustCompile(`(?i)\.exe$`),
	regexp.MustCompile(`(?i)pag=`),
}

// Ensure Extractor implements loclink.LinkExtractor.
var _ loclink.LinkExtractor = (*Extractor)(nil)

// Extractor extracts main-content links from HTML pages.
type Extractor struct {
	maxLinks int
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithMaxLinks caps the number of links returned per page.
func WithMaxLinks(n int) Option {
	return func(e *Extractor) {
		e.maxLinks = n
	}
}

// NewExtractor creates a new Extractor with default settings.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxLinks: DefaultMaxLinks}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and returns the unique links found in the page's
// main content, resolved against baseURL. The content scope prefers a
// <main> landmark, then <section> elements, then <body>, then the whole
// document. Links are deduplicated by resolved URL, keeping the first
// occurrence, and truncated to the configured maximum.
func (e *Extractor) Extract(html, baseURL string) (*loclink.ExtractResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, loclink.Errorf(loclink.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, loclink.Errorf(loclink.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs so the first occurrence wins
	seen := make(map[string]bool)
	var links []loclink.Link

	for _, scope := range contentScopes(doc) {
		scope.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists {
				return
			}
			href = strings.TrimSpace(href)
			if href == "" || isExcludedLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || seen[resolved] {
				return
			}
			seen[resolved] = true

			links = append(links, loclink.Link{
				URL:  resolved,
				Text: strings.TrimSpace(sel.Text()),
				Href: href,
			})
		})
	}

	result := &loclink.ExtractResult{Title: pageTitle(doc), Links: links}
	if e.maxLinks > 0 && len(links) > e.maxLinks {
		result.Truncated = len(links) - e.maxLinks
		result.Links = links[:e.maxLinks]
	}
	return result, nil
}

// contentScopes picks where links are harvested from: the first <main>
// landmark, else the <section> elements under <body>, else <body>, else
// the whole document. Scoping avoids counting navigation and footer
// boilerplate on pages that mark up their content.
func contentScopes(doc *goquery.Document) []*goquery.Selection {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return []*goquery.Selection{main}
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return []*goquery.Selection{doc.Selection}
	}
	if sections := body.Find("section"); sections.Length() > 0 {
		scopes := make([]*goquery.Selection, 0, sections.Length())
		sections.Each(func(_ int, sel *goquery.Selection) {
			scopes = append(scopes, sel)
		})
		return scopes
	}
	return []*goquery.Selection{body}
}

// pageTitle extracts the page title, falling back to NoTitle.
func pageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return NoTitle
	}
	return title
}

// resolveURL resolves a relative href against the page URL.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isExcludedLink checks if a href matches any of the exclusion patterns.
func isExcludedLink(href string) bool {
	for _, re := range excludePatterns {
		if re.MatchString(href) {
			return true
		}
	}
	return false
}
