package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
)

// fastRetries shrinks the backoff so failure paths do not slow the suite.
func fastRetries(t *testing.T) {
	t.Helper()
	prev := DefaultRetryDelay
	DefaultRetryDelay = time.Millisecond
	t.Cleanup(func() { DefaultRetryDelay = prev })
}

func newTestStateRepo(t *testing.T) repository.StateRepository {
	t.Helper()
	return repository.NewFileStateRepository(afero.NewMemMapFs(), t.TempDir())
}

func TestExecutor_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should run all steps in order and complete", func(t *testing.T) {
		stateRepo := newTestStateRepo(t)
		executor := NewExecutor(stateRepo, "fixture.sql", nil)
		var order []string
		executor.AddStep(PipelineStep{
			Name: "first",
			Type: domain.StepTypeFetchSource,
			Execute: func(ctx context.Context) (map[string]any, error) {
				order = append(order, "first")
				return nil, nil
			},
		})
		executor.AddStep(PipelineStep{
			Name: "second",
			Type: domain.StepTypeImportSQL,
			Execute: func(ctx context.Context) (map[string]any, error) {
				order = append(order, "second")
				return map[string]any{"key": "value"}, nil
			},
		})
		require.NoError(t, executor.Execute(ctx))
		assert.Equal(t, []string{"first", "second"}, order)
		assert.Equal(t, domain.PipelineStatusCompleted, executor.State().Status)

		loaded, err := stateRepo.LoadState(ctx, executor.SessionID())
		require.NoError(t, err)
		assert.Equal(t, domain.PipelineStatusCompleted, loaded.Status)
		require.Len(t, loaded.Steps, 2)
		assert.Equal(t, domain.StepStatusCompleted, loaded.Steps[1].Status)
		assert.Equal(t, "value", loaded.Steps[1].RollbackData["key"])
	})
	t.Run("Should retry a flaky step until it succeeds", func(t *testing.T) {
		fastRetries(t)
		executor := NewExecutor(newTestStateRepo(t), "fixture.sql", nil)
		attempts := 0
		executor.AddStep(PipelineStep{
			Name: "flaky",
			Type: domain.StepTypeFetchSource,
			Execute: func(ctx context.Context) (map[string]any, error) {
				attempts++
				if attempts < 3 {
					return nil, errors.New("transient")
				}
				return nil, nil
			},
		})
		require.NoError(t, executor.Execute(ctx))
		assert.Equal(t, 3, attempts)
	})
	t.Run("Should compensate completed steps in reverse order on failure", func(t *testing.T) {
		fastRetries(t)
		stateRepo := newTestStateRepo(t)
		executor := NewExecutor(stateRepo, "fixture.sql", nil)
		var compensated []string
		executor.AddStep(PipelineStep{
			Name: "first",
			Type: domain.StepTypeFetchSource,
			Execute: func(ctx context.Context) (map[string]any, error) {
				return nil, nil
			},
			Compensate: func(ctx context.Context, _ map[string]any) error {
				compensated = append(compensated, "first")
				return nil
			},
		})
		executor.AddStep(PipelineStep{
			Name: "second",
			Type: domain.StepTypeStoreContract,
			Execute: func(ctx context.Context) (map[string]any, error) {
				return map[string]any{"key": "checks-testcases"}, nil
			},
			Compensate: func(ctx context.Context, rollbackData map[string]any) error {
				compensated = append(compensated, rollbackData["key"].(string))
				return nil
			},
		})
		executor.AddStep(PipelineStep{
			Name: "third",
			Type: domain.StepTypeCommitCatalog,
			Execute: func(ctx context.Context) (map[string]any, error) {
				return nil, errors.New("boom")
			},
		})
		err := executor.Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step 'third' failed")
		assert.Equal(t, []string{"checks-testcases", "first"}, compensated)
		assert.Equal(t, domain.PipelineStatusRolledBack, executor.State().Status)

		loaded, err := stateRepo.LoadState(ctx, executor.SessionID())
		require.NoError(t, err)
		assert.Equal(t, domain.PipelineStatusRolledBack, loaded.Status)
		assert.Equal(t, domain.StepStatusRolledBack, loaded.Steps[0].Status)
		assert.Equal(t, domain.StepStatusRolledBack, loaded.Steps[1].Status)
		assert.Equal(t, domain.StepStatusFailed, loaded.Steps[2].Status)
	})
	t.Run("Should report a rollback failure alongside the step failure", func(t *testing.T) {
		fastRetries(t)
		executor := NewExecutor(newTestStateRepo(t), "fixture.sql", nil)
		executor.AddStep(PipelineStep{
			Name: "store",
			Type: domain.StepTypeStoreContract,
			Execute: func(ctx context.Context) (map[string]any, error) {
				return nil, nil
			},
			Compensate: func(ctx context.Context, _ map[string]any) error {
				return errors.New("cannot undo")
			},
		})
		executor.AddStep(PipelineStep{
			Name: "commit",
			Type: domain.StepTypeCommitCatalog,
			Execute: func(ctx context.Context) (map[string]any, error) {
				return nil, errors.New("boom")
			},
		})
		err := executor.Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step 'commit' failed")
		assert.Contains(t, err.Error(), "rollback also failed")
	})
	t.Run("Should do nothing when rolling back without completed steps", func(t *testing.T) {
		executor := NewExecutor(newTestStateRepo(t), "fixture.sql", nil)
		assert.NoError(t, executor.Rollback(ctx))
	})
}

func TestLoadExecutor(t *testing.T) {
	ctx := context.Background()
	t.Run("Should resume a persisted session", func(t *testing.T) {
		stateRepo := newTestStateRepo(t)
		executor := NewExecutor(stateRepo, "fixture.sql", nil)
		executor.AddStep(PipelineStep{
			Name: "fetch",
			Type: domain.StepTypeFetchSource,
			Execute: func(ctx context.Context) (map[string]any, error) {
				return nil, nil
			},
		})
		require.NoError(t, executor.Execute(ctx))

		loaded, err := LoadExecutor(ctx, stateRepo, executor.SessionID(), nil)
		require.NoError(t, err)
		assert.Equal(t, executor.SessionID(), loaded.SessionID())
		assert.Equal(t, domain.PipelineStatusCompleted, loaded.State().Status)
	})
	t.Run("Should fail for an unknown session", func(t *testing.T) {
		_, err := LoadExecutor(ctx, newTestStateRepo(t), "nope", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load pipeline state")
	})
}
