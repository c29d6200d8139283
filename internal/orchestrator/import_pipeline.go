package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// ImportPipeline wires the fetch, import, lint, store and commit steps into
// a compensated workflow: a failed run removes whatever it already put into
// the catalog.
type ImportPipeline struct {
	SourceRepo  repository.SourceRepository
	ImportSvc   service.ImportService
	ExportSvc   service.ExportService
	LintSvc     service.LintService
	CatalogRepo repository.CatalogRepository
	GitLog      repository.GitLogRepository
	StateRepo   repository.StateRepository
	Logger      *zap.Logger

	Source  string
	Key     string
	Options service.ImportOptions
}

// PipelineResult reports the outcome of a pipeline run.
type PipelineResult struct {
	SessionID string
	Entry     *domain.CatalogEntry
	Findings  []service.Finding
}

// Run executes the full pipeline and returns the stored entry.
func (p *ImportPipeline) Run(ctx context.Context) (*PipelineResult, error) {
	executor := NewExecutor(p.StateRepo, p.Source, p.Logger)
	result := &PipelineResult{SessionID: executor.SessionID()}

	var sql string
	var contract *domain.DataContract
	var document []byte
	var key string

	executor.AddStep(PipelineStep{
		Name: "fetch source",
		Type: domain.StepTypeFetchSource,
		Execute: func(ctx context.Context) (map[string]any, error) {
			read, err := p.SourceRepo.Read(ctx, p.Source)
			if err != nil {
				return nil, err
			}
			sql = read
			return nil, nil
		},
	})
	executor.AddStep(PipelineStep{
		Name: "import contract",
		Type: domain.StepTypeImportSQL,
		Execute: func(ctx context.Context) (map[string]any, error) {
			imported, err := p.ImportSvc.ImportDataContract(ctx, sql, p.Options)
			if err != nil {
				return nil, err
			}
			rendered, err := p.ExportSvc.ExportDataContract(ctx, imported, service.FormatYAML)
			if err != nil {
				return nil, err
			}
			contract = imported
			document = rendered
			executor.State().ContractID = imported.ID
			return nil, nil
		},
	})
	executor.AddStep(PipelineStep{
		Name: "lint contract",
		Type: domain.StepTypeLintContract,
		Execute: func(ctx context.Context) (map[string]any, error) {
			lintResult, err := p.LintSvc.Lint(ctx, contract)
			if err != nil {
				return nil, err
			}
			result.Findings = lintResult.Findings
			if lintResult.HasErrors() {
				return nil, fmt.Errorf("contract has %d lint errors", countErrors(lintResult))
			}
			return nil, nil
		},
	})
	executor.AddStep(PipelineStep{
		Name: "store contract",
		Type: domain.StepTypeStoreContract,
		Execute: func(ctx context.Context) (map[string]any, error) {
			key = p.Key
			if key == "" {
				key = repository.CatalogKey(contract.Info.Title)
			}
			if key == "" {
				return nil, fmt.Errorf("cannot derive a catalog key from contract title %q", contract.Info.Title)
			}
			entry := &domain.CatalogEntry{
				Key:        key,
				ContractID: contract.ID,
				Title:      contract.Info.Title,
				Version:    contract.Info.Version,
				Dialect:    string(p.Options.Dialect),
				Source:     p.Source,
				StoredAt:   executor.State().StartedAt.UTC(),
			}
			if err := p.CatalogRepo.Save(ctx, entry, document); err != nil {
				return nil, err
			}
			result.Entry = entry
			return map[string]any{"key": key}, nil
		},
		Compensate: func(ctx context.Context, rollbackData map[string]any) error {
			storedKey, ok := rollbackData["key"].(string)
			if !ok || storedKey == "" {
				return nil
			}
			return p.CatalogRepo.Delete(ctx, storedKey)
		},
	})
	if p.GitLog != nil {
		executor.AddStep(PipelineStep{
			Name: "commit catalog",
			Type: domain.StepTypeCommitCatalog,
			Execute: func(ctx context.Context) (map[string]any, error) {
				message := fmt.Sprintf("pipeline %s: store %s", executor.SessionID(), key)
				if _, err := p.GitLog.CommitAll(ctx, message); err != nil {
					return nil, err
				}
				return nil, nil
			},
			Compensate: func(ctx context.Context, _ map[string]any) error {
				// The store-contract compensation already removed the files.
				// Record that removal as its own commit.
				message := fmt.Sprintf("pipeline %s: rollback %s", executor.SessionID(), key)
				_, err := p.GitLog.CommitAll(ctx, message)
				return err
			},
		})
	}

	if err := executor.Execute(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// Rollback compensates a previously persisted session.
func Rollback(
	ctx context.Context,
	stateRepo repository.StateRepository,
	catalogRepo repository.CatalogRepository,
	sessionID string,
	logger *zap.Logger,
) error {
	executor, err := LoadExecutor(ctx, stateRepo, sessionID, logger)
	if err != nil {
		return err
	}
	for _, record := range executor.State().Steps {
		record := record
		switch record.Type {
		case domain.StepTypeStoreContract:
			executor.steps = append(executor.steps, PipelineStep{
				Name: "store contract",
				Type: domain.StepTypeStoreContract,
				Compensate: func(ctx context.Context, rollbackData map[string]any) error {
					storedKey, ok := rollbackData["key"].(string)
					if !ok || storedKey == "" {
						return nil
					}
					return catalogRepo.Delete(ctx, storedKey)
				},
			})
		default:
			executor.steps = append(executor.steps, PipelineStep{
				Name: string(record.Type),
				Type: record.Type,
			})
		}
	}
	if err := executor.Rollback(ctx); err != nil {
		return err
	}
	// A rolled-back session is terminal: drop its state so it can no longer
	// be picked up as the latest session.
	return stateRepo.DeleteState(ctx, sessionID)
}

func countErrors(result service.LintResult) int {
	count := 0
	for _, finding := range result.Findings {
		if finding.Severity == service.SeverityError {
			count++
		}
	}
	return count
}
