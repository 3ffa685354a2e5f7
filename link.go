package loclink

// Status classifies the outcome of checking a link or a page.
type Status string

// Status values assigned by the classifier.
const (
	// StatusSuccess marks a working link, including benign redirects and
	// links with no localized variant to point at.
	StatusSuccess Status = "success"

	// StatusError marks an unreachable or non-200 target.
	StatusError Status = "error"

	// StatusWarning marks a link outside the policy domain, or a page
	// whose input URL redirected or yielded no links.
	StatusWarning Status = "warning"

	// StatusDefect marks a reachable target that violates a content
	// contract other than localization.
	StatusDefect Status = "defect"

	// StatusLocalizationDefect marks a link whose localized variant
	// exists as a page of its own but is not the one being linked to.
	StatusLocalizationDefect Status = "localization_defect"
)

// Valid reports whether s is one of the defined status values.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusError, StatusWarning, StatusDefect, StatusLocalizationDefect:
		return true
	}
	return false
}

// Link is one outbound link found in a page's main content. URL is the
// href resolved against the page URL; Href preserves the raw attribute
// value as written in the document.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	Href string `json:"href"`
}

// CheckResult records the classification of a single extracted link.
// StatusCode is zero when the request never produced a response. Issue
// carries the human-readable explanation shown in reports; it is empty
// for a plain success.
type CheckResult struct {
	URL        string `json:"url"`
	LinkText   string `json:"linkText"`
	Status     Status `json:"status"`
	StatusCode int    `json:"statusCode"`
	Issue      string `json:"issue"`
	BaseURL    string `json:"baseUrl"`
}
