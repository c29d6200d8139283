package usecase

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// LintContractUseCase contains the logic for the lint command.

type LintContractUseCase struct {
	SourceRepo repository.SourceRepository
	LintSvc    service.LintService

	Source string
}

// Execute reads a contract document and returns its lint findings.
func (uc *LintContractUseCase) Execute(ctx context.Context) (service.LintResult, error) {
	raw, err := uc.SourceRepo.Read(ctx, uc.Source)
	if err != nil {
		return service.LintResult{}, fmt.Errorf("failed to read contract: %w", err)
	}
	var contract domain.DataContract
	if err := yaml.Unmarshal([]byte(raw), &contract); err != nil {
		return service.LintResult{}, fmt.Errorf("failed to parse contract: %w", err)
	}
	return uc.LintSvc.Lint(ctx, &contract)
}
