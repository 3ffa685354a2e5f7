package loclink

import (
	"context"
	"time"
)

// Mode identifies which entry mode produced a run.
type Mode string

// Run modes.
const (
	ModeSingle Mode = "single"
	ModeBulk   Mode = "bulk"
	ModeMulti  Mode = "multi"
)

// Run is one completed checking session: a form submission or a CLI
// invocation. Runs persist so past reports can be listed, re-rendered,
// and exported after the request that produced them is gone.
type Run struct {
	ID        string        `json:"id"`
	Mode      Mode          `json:"mode"`
	BaseURL   string        `json:"baseUrl"`
	CreatedAt time.Time     `json:"createdAt"`
	Summary   RunSummary    `json:"summary"`
	Pages     []*PageReport `json:"pages"`
}

// NewRun assembles a run from checked pages. The summary is computed
// from the pages; ID and CreatedAt are left for the store to assign.
func NewRun(mode Mode, baseURL string, pages []*PageReport, elapsed time.Duration) *Run {
	return &Run{
		Mode:    mode,
		BaseURL: baseURL,
		Summary: Summarize(pages, elapsed),
		Pages:   pages,
	}
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	switch r.Mode {
	case ModeSingle, ModeBulk, ModeMulti:
	default:
		return Errorf(EINVALID, "run mode required")
	}
	if len(r.Pages) == 0 {
		return Errorf(EINVALID, "run must contain at least one page")
	}
	return nil
}

// RunService represents a service for managing stored runs.
type RunService interface {
	// CreateRun persists a run with its pages and per-link results.
	// The run ID and creation time are assigned if unset.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its pages and results.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first,
	// without their per-link results. Also returns the total count.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, int, error)

	// DeleteRunsBefore permanently removes runs created before cutoff
	// and returns the number removed.
	DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Mode *Mode `json:"mode"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
