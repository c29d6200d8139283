package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
)

// PipelineStep represents a single step in the pipeline workflow
type PipelineStep struct {
	Name       string
	Type       domain.StepType
	Execute    func(ctx context.Context) (rollbackData map[string]any, err error)
	Compensate func(ctx context.Context, rollbackData map[string]any) error
}

// Executor runs pipeline workflows with persisted state and rollback support
type Executor struct {
	sessionID string
	stateRepo repository.StateRepository
	state     *domain.PipelineState
	steps     []PipelineStep
	logger    *zap.Logger
}

// NewExecutor creates a new pipeline executor for a fresh session
func NewExecutor(stateRepo repository.StateRepository, source string, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.New().String()
	return &Executor{
		sessionID: sessionID,
		stateRepo: stateRepo,
		state:     domain.NewPipelineState(sessionID, source),
		steps:     []PipelineStep{},
		logger:    logger,
	}
}

// LoadExecutor loads an existing pipeline session from state
func LoadExecutor(
	ctx context.Context,
	stateRepo repository.StateRepository,
	sessionID string,
	logger *zap.Logger,
) (*Executor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	state, err := stateRepo.LoadState(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline state: %w", err)
	}
	return &Executor{
		sessionID: sessionID,
		stateRepo: stateRepo,
		state:     state,
		steps:     []PipelineStep{},
		logger:    logger,
	}, nil
}

// SessionID returns the executor's session identifier
func (e *Executor) SessionID() string {
	return e.sessionID
}

// State returns the current pipeline state
func (e *Executor) State() *domain.PipelineState {
	return e.state
}

// AddStep adds a step to the pipeline
func (e *Executor) AddStep(step PipelineStep) {
	e.steps = append(e.steps, step)
	e.state.AddStep(step.Type)
}

// Execute runs the pipeline with automatic rollback on failure
func (e *Executor) Execute(ctx context.Context) error {
	if err := e.saveState(ctx); err != nil {
		return fmt.Errorf("failed to save initial state: %w", err)
	}
	e.state.Status = domain.PipelineStatusRunning
	for _, step := range e.steps {
		if err := e.executeStep(ctx, step); err != nil {
			e.state.MarkStepFailed(step.Type, err)
			if saveErr := e.saveState(ctx); saveErr != nil {
				e.logger.Warn("failed to save state before rollback", zap.Error(saveErr))
			}
			// Rollback gets its own context so it completes even when the
			// run's context is already canceled.
			rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RollbackTimeout)
			rollbackErr := e.rollback(rollbackCtx)
			cancel()
			if rollbackErr != nil {
				return fmt.Errorf("step '%s' failed: %w, rollback also failed: %v",
					step.Name, err, rollbackErr)
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name, err)
		}
	}
	e.state.Status = domain.PipelineStatusCompleted
	if saveErr := e.saveState(ctx); saveErr != nil {
		e.logger.Warn("failed to save final state", zap.Error(saveErr))
	}
	return nil
}

// executeStep executes a single step with retry logic
func (e *Executor) executeStep(ctx context.Context, step PipelineStep) error {
	e.state.MarkStepStarted(step.Type)
	if saveErr := e.saveState(ctx); saveErr != nil {
		e.logger.Warn("failed to save state after marking step started", zap.Error(saveErr))
	}
	e.logger.Info("executing pipeline step", zap.String("step", step.Name))
	var rollbackData map[string]any
	retryStrategy := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	err := retry.Do(ctx, retryStrategy, func(retryCtx context.Context) error {
		select {
		case <-retryCtx.Done():
			return retryCtx.Err()
		default:
		}
		data, execErr := step.Execute(retryCtx)
		if execErr != nil {
			return retry.RetryableError(execErr)
		}
		rollbackData = data
		return nil
	})
	if err != nil {
		return err
	}
	e.state.MarkStepCompleted(step.Type, rollbackData)
	if saveErr := e.saveState(ctx); saveErr != nil {
		e.logger.Warn("failed to save state after marking step completed", zap.Error(saveErr))
	}
	return nil
}

// Rollback executes compensating actions for completed steps
func (e *Executor) Rollback(ctx context.Context) error {
	return e.rollback(ctx)
}

func (e *Executor) rollback(ctx context.Context) error {
	completed := e.state.CompletedSteps()
	if len(completed) == 0 {
		e.logger.Info("no completed steps to roll back")
		return nil
	}
	for _, record := range completed {
		select {
		case <-ctx.Done():
			return fmt.Errorf("rollback canceled: %w", ctx.Err())
		default:
		}
		step := e.findStepByType(record.Type)
		if step == nil || step.Compensate == nil {
			continue
		}
		e.logger.Info("rolling back pipeline step", zap.String("step", step.Name))
		if err := e.executeCompensation(ctx, step, record.RollbackData); err != nil {
			return fmt.Errorf("rollback failed for %s: %w", step.Name, err)
		}
		e.state.MarkStepRolledBack(step.Type)
		if saveErr := e.saveState(ctx); saveErr != nil {
			e.logger.Warn("failed to save state during rollback", zap.Error(saveErr))
		}
	}
	e.state.Status = domain.PipelineStatusRolledBack
	if saveErr := e.saveState(ctx); saveErr != nil {
		e.logger.Warn("failed to save state after rollback", zap.Error(saveErr))
	}
	return nil
}

// executeCompensation executes a compensating action with retry
func (e *Executor) executeCompensation(ctx context.Context, step *PipelineStep, rollbackData map[string]any) error {
	retryStrategy := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	return retry.Do(ctx, retryStrategy, func(retryCtx context.Context) error {
		select {
		case <-retryCtx.Done():
			return retryCtx.Err()
		default:
		}
		if err := step.Compensate(retryCtx, rollbackData); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (e *Executor) findStepByType(stepType domain.StepType) *PipelineStep {
	for i := range e.steps {
		if e.steps[i].Type == stepType {
			return &e.steps[i]
		}
	}
	return nil
}

func (e *Executor) saveState(ctx context.Context) error {
	return e.stateRepo.SaveState(ctx, e.state)
}
