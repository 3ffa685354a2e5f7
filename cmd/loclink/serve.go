package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/loclink"
	lochttp "github.com/fwojciec/loclink/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the signal context
// is cancelled, then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := lochttp.NewServer()
	srv.Addr = c.Addr
	srv.CheckService = deps.Checks
	srv.RunService = deps.Runs
	if deps.Reports != nil {
		srv.Reports = deps.Reports
	}
	srv.Renderer = deps.Renderer
	srv.MetricsHandler = deps.Metrics
	srv.Logger = deps.Logger

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("server started", "addr", c.Addr)
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)

	if c.RetentionDays > 0 {
		g.Go(func() error {
			c.purge(ctx, deps)
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					c.purge(ctx, deps)
				}
			}
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		deps.Logger.Info("shutting down")
		return srv.Close()
	})

	return g.Wait()
}

// purge removes stored runs and CSV files older than the retention
// window.
func (c *ServeCmd) purge(ctx context.Context, deps *Dependencies) {
	cutoff := time.Now().AddDate(0, 0, -c.RetentionDays)

	if n, err := deps.Runs.DeleteRunsBefore(ctx, cutoff); err != nil {
		deps.Logger.Error("purge runs", "err", err)
	} else if n > 0 {
		deps.Logger.Info("purged stored runs", "count", n)
	}

	if deps.Reports != nil {
		if n, err := deps.Reports.RemoveReportsBefore(cutoff); err != nil {
			deps.Logger.Error("purge reports", "err", err)
		} else if n > 0 {
			deps.Logger.Info("purged csv reports", "count", n)
		}
	}
}
