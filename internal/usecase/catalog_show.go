package usecase

import (
	"context"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
)

// CatalogShowUseCase loads one stored contract and its metadata.

type CatalogShowUseCase struct {
	CatalogRepo repository.CatalogRepository

	Key string
}

// Execute runs the use case, returning the entry and the contract document.
func (uc *CatalogShowUseCase) Execute(ctx context.Context) (*domain.CatalogEntry, []byte, error) {
	return uc.CatalogRepo.Load(ctx, uc.Key)
}
