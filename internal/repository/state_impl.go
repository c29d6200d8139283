package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/dcx-tools/dcx/internal/domain"
)

const (
	// StateSchemaVersion defines the current schema version for state files.
	StateSchemaVersion = "1.0.0"
	stateFilePrefix    = "pipeline-"
	stateFileSuffix    = ".json"
)

// stateEnvelope wraps pipeline state with a schema version for forward
// compatibility.
type stateEnvelope struct {
	SchemaVersion string                `json:"schema_version"`
	State         *domain.PipelineState `json:"state"`
}

type fileStateRepository struct {
	fs       afero.Fs
	stateDir string
}

// NewFileStateRepository creates a new file-based pipeline state repository.
func NewFileStateRepository(fs afero.Fs, stateDir string) StateRepository {
	if stateDir == "" {
		stateDir = ".dcx-state"
	}
	return &fileStateRepository{
		fs:       fs,
		stateDir: stateDir,
	}
}

func (r *fileStateRepository) SaveState(ctx context.Context, state *domain.PipelineState) error {
	if state == nil || state.SessionID == "" {
		return fmt.Errorf("pipeline state has no session ID")
	}
	if err := r.fs.MkdirAll(r.stateDir, CatalogDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}
	unlock, err := r.lockSession(ctx, state.SessionID)
	if err != nil {
		return err
	}
	defer unlock()
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(stateEnvelope{
		SchemaVersion: StateSchemaVersion,
		State:         state,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline state: %w", err)
	}
	filename := r.stateFilename(state.SessionID)
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, CatalogFilePermissions); err != nil {
		return fmt.Errorf("failed to write pipeline state: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to finalize pipeline state: %w", err)
	}
	return nil
}

func (r *fileStateRepository) LoadState(ctx context.Context, sessionID string) (*domain.PipelineState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(r.fs, r.stateFilename(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no pipeline state found for session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to read pipeline state: %w", err)
	}
	var envelope stateEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pipeline state: %w", err)
	}
	if envelope.SchemaVersion != StateSchemaVersion {
		return nil, fmt.Errorf("incompatible state schema version: expected %s, got %s",
			StateSchemaVersion, envelope.SchemaVersion)
	}
	if envelope.State == nil {
		return nil, fmt.Errorf("pipeline state for session %s is empty", sessionID)
	}
	return envelope.State, nil
}

func (r *fileStateRepository) LoadLatestState(ctx context.Context) (*domain.PipelineState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exists, err := afero.DirExists(r.fs, r.stateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat state directory: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("no pipeline state found")
	}
	infos, err := afero.ReadDir(r.fs, r.stateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read state directory: %w", err)
	}
	var latest *domain.PipelineState
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasPrefix(name, stateFilePrefix) || !strings.HasSuffix(name, stateFileSuffix) {
			continue
		}
		sessionID := strings.TrimSuffix(strings.TrimPrefix(name, stateFilePrefix), stateFileSuffix)
		state, err := r.LoadState(ctx, sessionID)
		if err != nil {
			continue
		}
		if latest == nil || state.UpdatedAt.After(latest.UpdatedAt) {
			latest = state
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("no pipeline state found")
	}
	return latest, nil
}

func (r *fileStateRepository) DeleteState(ctx context.Context, sessionID string) error {
	unlock, err := r.lockSession(ctx, sessionID)
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.fs.Remove(r.stateFilename(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pipeline state: %w", err)
	}
	return nil
}

func (r *fileStateRepository) StateExists(ctx context.Context, sessionID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.Exists(r.fs, r.stateFilename(sessionID))
}

func (r *fileStateRepository) lockSession(ctx context.Context, sessionID string) (func(), error) {
	lock := flock.New(r.stateFilename(sessionID) + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, LockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire state lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire state lock within timeout")
	}
	return func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock state file: %v\n", unlockErr)
		}
	}, nil
}

func (r *fileStateRepository) stateFilename(sessionID string) string {
	return filepath.Join(r.stateDir, stateFilePrefix+sessionID+stateFileSuffix)
}
