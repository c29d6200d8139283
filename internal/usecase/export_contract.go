package usecase

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// ExportContractUseCase contains the logic for the export command: read a
// contract document and render it in the requested format.

type ExportContractUseCase struct {
	SourceRepo repository.SourceRepository
	ExportSvc  service.ExportService

	Source string
	Format service.ExportFormat
}

// Execute runs the use case and returns the rendered document.
func (uc *ExportContractUseCase) Execute(ctx context.Context) ([]byte, error) {
	raw, err := uc.SourceRepo.Read(ctx, uc.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract: %w", err)
	}
	var contract domain.DataContract
	if err := yaml.Unmarshal([]byte(raw), &contract); err != nil {
		return nil, fmt.Errorf("failed to parse contract: %w", err)
	}
	return uc.ExportSvc.ExportDataContract(ctx, &contract, uc.Format)
}
