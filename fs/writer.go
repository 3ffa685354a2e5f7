// Package fs provides file-based storage for check reports.
package fs

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/loclink"
)

// ReportFilename returns the file name for a run's CSV export.
// Example: l10n_20250108_1530.csv, or multi_l10n_20250108_1530.csv for
// multi-locale runs.
func ReportFilename(run *loclink.Run) string {
	ts := run.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	name := "l10n_" + ts.Format("20060102_1504") + ".csv"
	if run.Mode == loclink.ModeMulti {
		name = "multi_" + name
	}
	return name
}

// csvHeader is the column order downstream spreadsheets rely on.
var csvHeader = []string{"url", "link_text", "status_code", "status", "issue", "base_url"}

// Ensure Writer implements loclink.ReportWriter at compile time.
var _ loclink.ReportWriter = (*Writer)(nil)

// Writer writes run reports as CSV files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteCSV writes one row per checked link and returns the path of the
// written file. Pages that never produced link results, such as
// unreachable inputs, contribute no rows.
func (w *Writer) WriteCSV(run *loclink.Run) (string, error) {
	if err := run.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, ReportFilename(run))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		_ = f.Close()
		return "", err
	}
	for _, page := range run.Pages {
		for _, result := range page.Results {
			code := ""
			if result.StatusCode != 0 {
				code = strconv.Itoa(result.StatusCode)
			}
			record := []string{
				result.URL,
				result.LinkText,
				code,
				string(result.Status),
				result.Issue,
				result.BaseURL,
			}
			if err := cw.Write(record); err != nil {
				_ = f.Close()
				return "", err
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// RemoveReportsBefore deletes CSV reports last modified before cutoff
// and returns the number of files removed. A missing report directory
// counts as nothing to remove.
func (w *Writer) RemoveReportsBefore(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(w.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.baseDir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
