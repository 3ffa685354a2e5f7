package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/loclink"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.Purge {
		return c.runPurge(deps)
	}

	filter := loclink.RunFilter{Limit: c.Limit}
	if c.Mode != "" {
		mode := loclink.Mode(c.Mode)
		switch mode {
		case loclink.ModeSingle, loclink.ModeBulk, loclink.ModeMulti:
		default:
			err := loclink.Errorf(loclink.EINVALID, "unknown run mode %q", c.Mode)
			fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
			return err
		}
		filter.Mode = &mode
	}

	runs, total, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No stored runs.")
		return nil
	}

	for _, run := range runs {
		s := run.Summary
		fmt.Fprintf(deps.Stdout, "%s  %-6s  %s  %d pages  %d links  %.1f%%\n",
			run.ID, run.Mode, run.CreatedAt.Format("2006-01-02 15:04"),
			s.TotalPages, s.Stats.TotalLinks, s.Stats.SuccessRate)
	}
	if total > len(runs) {
		fmt.Fprintf(deps.Stdout, "Showing %d of %d runs.\n", len(runs), total)
	}

	return nil
}

func (c *RunsCmd) runPurge(deps *Dependencies) error {
	if c.RetentionDays <= 0 {
		err := loclink.Errorf(loclink.EINVALID, "retention window must be positive")
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -c.RetentionDays)
	n, err := deps.Runs.DeleteRunsBefore(deps.Ctx, cutoff)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Purged %d runs older than %d days.\n", n, c.RetentionDays)
	return nil
}
