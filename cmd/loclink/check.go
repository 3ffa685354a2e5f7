package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fwojciec/loclink"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	mode := loclink.ModeBulk
	if len(c.URLs) == 1 {
		mode = loclink.ModeSingle
	}

	begin := time.Now()
	reports, err := deps.Checks.CheckPages(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	run := loclink.NewRun(mode, c.URLs[0], reports, time.Since(begin))
	writeTextReport(deps.Stdout, run)

	if c.CSV {
		path, err := deps.Reports.WriteCSV(run)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nReport written to %s\n", path)
	}

	return nil
}

// writeTextReport renders a run as plain text: a two-line summary, then
// one line per link grouped by page.
func writeTextReport(w io.Writer, run *loclink.Run) {
	s := run.Summary
	fmt.Fprintf(w, "Checked %d pages in %.1fs: %d ok, %d failed, %d with warnings\n",
		s.TotalPages, s.Elapsed.Seconds(), s.SuccessfulPages, s.ErrorPages, s.WarningPages)
	fmt.Fprintf(w, "Links: %d total, %d working, %d broken, %d warnings, %d localization defects (%.1f%% success)\n",
		s.Stats.TotalLinks, s.Stats.WorkingLinks, s.Stats.BrokenLinks,
		s.Stats.WarningLinks, s.Stats.LocalizationDefects, s.Stats.SuccessRate)

	for _, page := range run.Pages {
		fmt.Fprintf(w, "\n%s (%s) %s\n", page.URL, page.Locale, page.Status)
		if page.Message != "" {
			fmt.Fprintf(w, "  %s\n", page.Message)
		}
		for _, result := range page.Results {
			code := "N/A"
			if result.StatusCode != 0 {
				code = strconv.Itoa(result.StatusCode)
			}
			fmt.Fprintf(w, "  [%s] %-19s %s\n", code, result.Status, result.URL)
			if result.Issue != "" {
				fmt.Fprintf(w, "        %s\n", result.Issue)
			}
		}
	}
}
