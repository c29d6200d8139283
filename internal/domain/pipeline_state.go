package domain

import (
	"time"
)

// PipelineStatus represents the overall status of an import pipeline run.
type PipelineStatus string

const (
	PipelineStatusPending    PipelineStatus = "pending"
	PipelineStatusRunning    PipelineStatus = "running"
	PipelineStatusCompleted  PipelineStatus = "completed"
	PipelineStatusFailed     PipelineStatus = "failed"
	PipelineStatusRolledBack PipelineStatus = "rolled_back"
)

// StepStatus represents the status of an individual pipeline step.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusRunning    StepStatus = "running"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusFailed     StepStatus = "failed"
	StepStatusRolledBack StepStatus = "rolled_back"
)

// StepType identifies the type of pipeline step.
type StepType string

const (
	StepTypeFetchSource   StepType = "fetch_source"
	StepTypeImportSQL     StepType = "import_sql"
	StepTypeLintContract  StepType = "lint_contract"
	StepTypeStoreContract StepType = "store_contract"
	StepTypeCommitCatalog StepType = "commit_catalog"
)

// PipelineState records the progress of a pipeline run so a failed session
// can be resumed or rolled back.
type PipelineState struct {
	SessionID  string         `json:"session_id"`
	StartedAt  time.Time      `json:"started_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Source     string         `json:"source"`
	ContractID string         `json:"contract_id,omitempty"`
	Steps      []StepRecord   `json:"steps"`
	Status     PipelineStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
}

// StepRecord represents a single step in the pipeline run.
type StepRecord struct {
	ID           string         `json:"id"`
	Type         StepType       `json:"type"`
	Status       StepStatus     `json:"status"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	RollbackData map[string]any `json:"rollback_data,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// NewPipelineState creates a new pipeline state for a session.
func NewPipelineState(sessionID, source string) *PipelineState {
	now := time.Now()
	return &PipelineState{
		SessionID: sessionID,
		StartedAt: now,
		UpdatedAt: now,
		Source:    source,
		Steps:     []StepRecord{},
		Status:    PipelineStatusPending,
	}
}

// AddStep adds a new step record to the state.
func (ps *PipelineState) AddStep(stepType StepType) *StepRecord {
	step := StepRecord{
		ID:        string(stepType) + "_" + time.Now().Format("20060102150405"),
		Type:      stepType,
		Status:    StepStatusPending,
		StartedAt: time.Now(),
	}
	ps.Steps = append(ps.Steps, step)
	ps.UpdatedAt = time.Now()
	return &ps.Steps[len(ps.Steps)-1]
}

// CompletedSteps returns all successfully completed steps in reverse order,
// the order compensation must run in.
func (ps *PipelineState) CompletedSteps() []StepRecord {
	var completed []StepRecord
	for i := len(ps.Steps) - 1; i >= 0; i-- {
		if ps.Steps[i].Status == StepStatusCompleted {
			completed = append(completed, ps.Steps[i])
		}
	}
	return completed
}

// MarkStepStarted marks a pending step of the given type as running.
func (ps *PipelineState) MarkStepStarted(stepType StepType) {
	for i := range ps.Steps {
		if ps.Steps[i].Type == stepType && ps.Steps[i].Status == StepStatusPending {
			ps.Steps[i].Status = StepStatusRunning
			ps.Steps[i].StartedAt = time.Now()
			ps.UpdatedAt = time.Now()
			break
		}
	}
}

// MarkStepCompleted marks a running step as completed with rollback data.
func (ps *PipelineState) MarkStepCompleted(stepType StepType, rollbackData map[string]any) {
	now := time.Now()
	for i := range ps.Steps {
		if ps.Steps[i].Type == stepType && ps.Steps[i].Status == StepStatusRunning {
			ps.Steps[i].Status = StepStatusCompleted
			ps.Steps[i].CompletedAt = &now
			ps.Steps[i].RollbackData = rollbackData
			ps.UpdatedAt = now
			break
		}
	}
}

// MarkStepRolledBack marks a completed step as rolled back.
func (ps *PipelineState) MarkStepRolledBack(stepType StepType) {
	for i := range ps.Steps {
		if ps.Steps[i].Type == stepType && ps.Steps[i].Status == StepStatusCompleted {
			ps.Steps[i].Status = StepStatusRolledBack
			ps.UpdatedAt = time.Now()
			break
		}
	}
}

// MarkStepFailed marks a running step as failed and fails the run.
func (ps *PipelineState) MarkStepFailed(stepType StepType, err error) {
	now := time.Now()
	for i := range ps.Steps {
		if ps.Steps[i].Type == stepType && ps.Steps[i].Status == StepStatusRunning {
			ps.Steps[i].Status = StepStatusFailed
			ps.Steps[i].CompletedAt = &now
			ps.Steps[i].Error = err.Error()
			ps.UpdatedAt = now
			break
		}
	}
	ps.Status = PipelineStatusFailed
	ps.Error = err.Error()
}
