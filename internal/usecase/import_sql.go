package usecase

import (
	"context"
	"fmt"

	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// OutputSpec selects which contract standard an import produces.
type OutputSpec string

const (
	// SpecDataContract produces a Data Contract Specification document.
	SpecDataContract OutputSpec = "datacontract"
	// SpecODCS produces an Open Data Contract Standard document.
	SpecODCS OutputSpec = "odcs"
)

// ParseOutputSpec validates an output spec name.
func ParseOutputSpec(s string) (OutputSpec, error) {
	switch OutputSpec(s) {
	case SpecDataContract, SpecODCS:
		return OutputSpec(s), nil
	case "":
		return SpecDataContract, nil
	default:
		return "", fmt.Errorf("unknown output spec %q (expected datacontract or odcs)", s)
	}
}

// ImportSQLUseCase contains the logic for the import command: read a DDL
// source, derive a contract from it and render it in the requested format.

type ImportSQLUseCase struct {
	SourceRepo repository.SourceRepository
	ImportSvc  service.ImportService
	ExportSvc  service.ExportService

	Source  string
	Spec    OutputSpec
	Format  service.ExportFormat
	Options service.ImportOptions
}

// Execute runs the use case and returns the rendered contract document.
func (uc *ImportSQLUseCase) Execute(ctx context.Context) ([]byte, error) {
	sql, err := uc.SourceRepo.Read(ctx, uc.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	switch uc.Spec {
	case SpecODCS:
		contract, err := uc.ImportSvc.ImportOpenDataContract(ctx, sql, uc.Options)
		if err != nil {
			return nil, err
		}
		return uc.ExportSvc.ExportOpenDataContract(ctx, contract, uc.Format)
	default:
		contract, err := uc.ImportSvc.ImportDataContract(ctx, sql, uc.Options)
		if err != nil {
			return nil, err
		}
		return uc.ExportSvc.ExportDataContract(ctx, contract, uc.Format)
	}
}
