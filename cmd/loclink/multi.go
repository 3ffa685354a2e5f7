package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/loclink"
)

// Run executes the multi command.
func (c *MultiCmd) Run(deps *Dependencies) error {
	begin := time.Now()
	reports, err := deps.Checks.CheckLocales(deps.Ctx, c.BaseURL, c.Locales)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	run := loclink.NewRun(loclink.ModeMulti, c.BaseURL, reports, time.Since(begin))
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
