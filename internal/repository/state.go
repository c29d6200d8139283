package repository

import (
	"context"

	"github.com/dcx-tools/dcx/internal/domain"
)

// StateRepository persists pipeline execution state so an interrupted run
// can be inspected or rolled back.
type StateRepository interface {
	// SaveState persists the pipeline state for the given session.
	SaveState(ctx context.Context, state *domain.PipelineState) error
	// LoadState retrieves the pipeline state for the given session.
	LoadState(ctx context.Context, sessionID string) (*domain.PipelineState, error)
	// LoadLatestState retrieves the most recently updated pipeline state.
	LoadLatestState(ctx context.Context) (*domain.PipelineState, error)
	// DeleteState removes the pipeline state for the given session.
	DeleteState(ctx context.Context, sessionID string) error
	// StateExists reports whether state exists for the given session.
	StateExists(ctx context.Context, sessionID string) (bool, error)
}
