package loclink

import "time"

// PageStats aggregates the check results for one page. Broken counts
// unreachable and defective targets; localization defects and warnings
// are tracked separately.
type PageStats struct {
	TotalLinks          int     `json:"totalLinks"`
	WorkingLinks        int     `json:"workingLinks"`
	BrokenLinks         int     `json:"brokenLinks"`
	WarningLinks        int     `json:"warningLinks"`
	LocalizationDefects int     `json:"localizationDefects"`
	SuccessRate         float64 `json:"successRate"`
}

// ComputePageStats folds results into counts. A page with no links has a
// zero success rate rather than a division error.
func ComputePageStats(results []CheckResult) PageStats {
	s := PageStats{TotalLinks: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.WorkingLinks++
		case StatusError, StatusDefect:
			s.BrokenLinks++
		case StatusWarning:
			s.WarningLinks++
		case StatusLocalizationDefect:
			s.LocalizationDefects++
		}
	}
	if s.TotalLinks > 0 {
		s.SuccessRate = float64(s.WorkingLinks) / float64(s.TotalLinks) * 100
	}
	return s
}

// PageReport is the outcome of checking one input URL. Status is the
// page-level outcome: StatusError when the page could not be analyzed,
// StatusWarning when the input URL redirected or yielded no links, and
// StatusSuccess otherwise. Message explains non-success outcomes.
type PageReport struct {
	URL     string        `json:"url"`
	Locale  string        `json:"locale"`
	Title   string        `json:"title"`
	Status  Status        `json:"status"`
	Message string        `json:"message"`
	Results []CheckResult `json:"results"`
	Stats   PageStats     `json:"stats"`
	Elapsed time.Duration `json:"elapsed"`
}

// RunSummary aggregates page reports across a single run.
type RunSummary struct {
	TotalPages      int           `json:"totalPages"`
	SuccessfulPages int           `json:"successfulPages"`
	ErrorPages      int           `json:"errorPages"`
	WarningPages    int           `json:"warningPages"`
	Stats           PageStats     `json:"stats"`
	Elapsed         time.Duration `json:"elapsed"`
}

// ReportWriter persists run artifacts outside the database.
type ReportWriter interface {
	// WriteCSV writes one CSV row per link result across all pages of
	// the run and returns the path of the file it created. Each run
	// produces its own timestamped file.
	WriteCSV(run *Run) (string, error)
}

// ReportRenderer renders a stored run into a downloadable document.
type ReportRenderer interface {
	Render(run *Run) ([]byte, error)
}

// Summarize folds page reports into a run summary. The aggregate success
// rate is computed over all links rather than averaged per page.
func Summarize(pages []*PageReport, elapsed time.Duration) RunSummary {
	sum := RunSummary{TotalPages: len(pages), Elapsed: elapsed}
	for _, p := range pages {
		switch p.Status {
		case StatusError:
			sum.ErrorPages++
		case StatusWarning:
			sum.WarningPages++
		default:
			sum.SuccessfulPages++
		}
		sum.Stats.TotalLinks += p.Stats.TotalLinks
		sum.Stats.WorkingLinks += p.Stats.WorkingLinks
		sum.Stats.BrokenLinks += p.Stats.BrokenLinks
		sum.Stats.WarningLinks += p.Stats.WarningLinks
		sum.Stats.LocalizationDefects += p.Stats.LocalizationDefects
	}
	if sum.Stats.TotalLinks > 0 {
		sum.Stats.SuccessRate = float64(sum.Stats.WorkingLinks) / float64(sum.Stats.TotalLinks) * 100
	}
	return sum
}
