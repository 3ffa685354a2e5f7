package loclink

// ExtractResult holds the links extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, or "No title" when the page has none.
	Title string

	// Links are the unique main-content links in order of first
	// appearance, deduplicated by resolved URL.
	Links []Link

	// Truncated is the number of links dropped because the page had
	// more than the configured maximum.
	Truncated int
}

// LinkExtractor extracts outbound links from HTML pages.
type LinkExtractor interface {
	// Extract parses html and returns the links found in the page's
	// main content, resolved against baseURL. Extraction prefers a
	// <main> landmark, then <section> elements, then <body>, then the
	// whole document, so navigation and footer boilerplate is not
	// counted when a landmark exists.
	Extract(html, baseURL string) (*ExtractResult, error)
}
