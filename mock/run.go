package mock

import (
	"context"
	"time"

	"github.com/fwojciec/loclink"
)

var _ loclink.RunService = (*RunService)(nil)

// RunService is a mock implementation of loclink.RunService.
type RunService struct {
	CreateRunFn        func(ctx context.Context, run *loclink.Run) error
	FindRunByIDFn      func(ctx context.Context, id string) (*loclink.Run, error)
	FindRunsFn         func(ctx context.Context, filter loclink.RunFilter) ([]*loclink.Run, int, error)
	DeleteRunsBeforeFn func(ctx context.Context, cutoff time.Time) (int, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *loclink.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*loclink.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter loclink.RunFilter) ([]*loclink.Run, int, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return s.DeleteRunsBeforeFn(ctx, cutoff)
}
