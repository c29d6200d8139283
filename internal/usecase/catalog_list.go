package usecase

import (
	"context"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
)

// CatalogListUseCase lists all contracts stored in the local catalog.

type CatalogListUseCase struct {
	CatalogRepo repository.CatalogRepository
}

// Execute runs the use case.
func (uc *CatalogListUseCase) Execute(ctx context.Context) ([]domain.CatalogEntry, error) {
	return uc.CatalogRepo.List(ctx)
}
