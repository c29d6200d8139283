package usecase

import (
	"context"
	"fmt"

	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// CheckFixtureUseCase contains the logic for the check command: verify that
// the INSERT rows of a fixture script satisfy the constraints its DDL
// declares.

type CheckFixtureUseCase struct {
	SourceRepo repository.SourceRepository
	CheckSvc   service.CheckService

	Source string
}

// Execute runs the use case.
func (uc *CheckFixtureUseCase) Execute(ctx context.Context) (service.CheckReport, error) {
	sql, err := uc.SourceRepo.Read(ctx, uc.Source)
	if err != nil {
		return service.CheckReport{}, fmt.Errorf("failed to read source: %w", err)
	}
	return uc.CheckSvc.CheckFixture(ctx, sql)
}
