package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/loclink"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ loclink.RunService = (*RunService)(nil)

// RunService implements loclink.RunService using SQLite. Runs span three
// tables: the run row carries the summary, run_pages the per-page
// outcomes, and run_links the individual link results.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun persists a run with its pages and per-link results. The run
// ID and creation time are assigned if unset.
func (s *RunService) CreateRun(ctx context.Context, run *loclink.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, base_url, created_at,
			total_pages, successful_pages, error_pages, warning_pages,
			total_links, working_links, broken_links, warning_links,
			localization_defects, success_rate, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Mode), run.BaseURL, run.CreatedAt.UTC().Format(time.RFC3339),
		run.Summary.TotalPages, run.Summary.SuccessfulPages, run.Summary.ErrorPages, run.Summary.WarningPages,
		run.Summary.Stats.TotalLinks, run.Summary.Stats.WorkingLinks, run.Summary.Stats.BrokenLinks,
		run.Summary.Stats.WarningLinks, run.Summary.Stats.LocalizationDefects, run.Summary.Stats.SuccessRate,
		run.Summary.Elapsed.Milliseconds())
	if err != nil {
		return err
	}

	for i, page := range run.Pages {
		pageID := uuid.New().String()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_pages (id, run_id, position, url, locale, title, status, message,
				total_links, working_links, broken_links, warning_links,
				localization_defects, success_rate, elapsed_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, pageID, run.ID, i, page.URL, page.Locale, page.Title, string(page.Status), page.Message,
			page.Stats.TotalLinks, page.Stats.WorkingLinks, page.Stats.BrokenLinks, page.Stats.WarningLinks,
			page.Stats.LocalizationDefects, page.Stats.SuccessRate, page.Elapsed.Milliseconds())
		if err != nil {
			return err
		}

		for j, result := range page.Results {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO run_links (page_id, position, url, link_text, status, status_code, issue, base_url)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, pageID, j, result.URL, result.LinkText, string(result.Status), result.StatusCode,
				result.Issue, result.BaseURL)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run with its pages and per-link results.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*loclink.Run, error) {
	var run loclink.Run
	var createdAt string
	var elapsedMS int64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, mode, base_url, created_at,
			total_pages, successful_pages, error_pages, warning_pages,
			total_links, working_links, broken_links, warning_links,
			localization_defects, success_rate, elapsed_ms
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Mode, &run.BaseURL, &createdAt,
		&run.Summary.TotalPages, &run.Summary.SuccessfulPages, &run.Summary.ErrorPages, &run.Summary.WarningPages,
		&run.Summary.Stats.TotalLinks, &run.Summary.Stats.WorkingLinks, &run.Summary.Stats.BrokenLinks,
		&run.Summary.Stats.WarningLinks, &run.Summary.Stats.LocalizationDefects, &run.Summary.Stats.SuccessRate,
		&elapsedMS)

	if err == sql.ErrNoRows {
		return nil, loclink.Errorf(loclink.ENOTFOUND, "Run not found.")
	}
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	run.Summary.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	pages, pageIDs, err := s.findRunPages(ctx, id)
	if err != nil {
		return nil, err
	}
	for i, pageID := range pageIDs {
		results, err := s.findPageLinks(ctx, pageID)
		if err != nil {
			return nil, err
		}
		pages[i].Results = results
	}
	run.Pages = pages

	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first, without
// pages or per-link results. Also returns the total count.
func (s *RunService) FindRuns(ctx context.Context, filter loclink.RunFilter) ([]*loclink.Run, int, error) {
	where := "WHERE 1=1"
	var args []any

	if filter.Mode != nil {
		where += " AND mode = ?"
		args = append(args, string(*filter.Mode))
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs "+where, args...).Scan(&n); err != nil {
		return nil, 0, err
	}

	var query strings.Builder
	query.WriteString(`
		SELECT id, mode, base_url, created_at,
			total_pages, successful_pages, error_pages, warning_pages,
			total_links, working_links, broken_links, warning_links,
			localization_defects, success_rate, elapsed_ms
		FROM runs `)
	query.WriteString(where)
	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*loclink.Run
	for rows.Next() {
		var run loclink.Run
		var createdAt string
		var elapsedMS int64

		if err := rows.Scan(&run.ID, &run.Mode, &run.BaseURL, &createdAt,
			&run.Summary.TotalPages, &run.Summary.SuccessfulPages, &run.Summary.ErrorPages, &run.Summary.WarningPages,
			&run.Summary.Stats.TotalLinks, &run.Summary.Stats.WorkingLinks, &run.Summary.Stats.BrokenLinks,
			&run.Summary.Stats.WarningLinks, &run.Summary.Stats.LocalizationDefects, &run.Summary.Stats.SuccessRate,
			&elapsedMS); err != nil {
			return nil, 0, err
		}

		run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, 0, err
		}
		run.Summary.Elapsed = time.Duration(elapsedMS) * time.Millisecond

		runs = append(runs, &run)
	}

	return runs, n, rows.Err()
}

// DeleteRunsBefore permanently removes runs created before cutoff and
// returns the number removed. Pages and links go with their runs via
// foreign key cascade.
func (s *RunService) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE created_at < ?",
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

// findRunPages loads a run's pages in insertion order, without their
// link results. The page row IDs come back alongside so results can be
// attached.
func (s *RunService) findRunPages(ctx context.Context, runID string) ([]*loclink.PageReport, []string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, locale, title, status, message,
			total_links, working_links, broken_links, warning_links,
			localization_defects, success_rate, elapsed_ms
		FROM run_pages
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var pages []*loclink.PageReport
	var pageIDs []string
	for rows.Next() {
		var page loclink.PageReport
		var pageID string
		var elapsedMS int64

		if err := rows.Scan(&pageID, &page.URL, &page.Locale, &page.Title, &page.Status, &page.Message,
			&page.Stats.TotalLinks, &page.Stats.WorkingLinks, &page.Stats.BrokenLinks, &page.Stats.WarningLinks,
			&page.Stats.LocalizationDefects, &page.Stats.SuccessRate, &elapsedMS); err != nil {
			return nil, nil, err
		}
		page.Elapsed = time.Duration(elapsedMS) * time.Millisecond

		pages = append(pages, &page)
		pageIDs = append(pageIDs, pageID)
	}

	return pages, pageIDs, rows.Err()
}

// findPageLinks loads one page's link results in insertion order.
func (s *RunService) findPageLinks(ctx context.Context, pageID string) ([]loclink.CheckResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, link_text, status, status_code, issue, base_url
		FROM run_links
		WHERE page_id = ?
		ORDER BY position ASC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []loclink.CheckResult
	for rows.Next() {
		var result loclink.CheckResult
		if err := rows.Scan(&result.URL, &result.LinkText, &result.Status, &result.StatusCode,
			&result.Issue, &result.BaseURL); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
