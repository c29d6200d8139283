package usecase

import (
	"context"
	"fmt"

	"github.com/dcx-tools/dcx/internal/repository"
)

// CatalogHistoryUseCase lists the catalog's stored revisions, newest first.

type CatalogHistoryUseCase struct {
	GitLog repository.GitLogRepository

	Limit int
}

// Execute runs the use case.
func (uc *CatalogHistoryUseCase) Execute(ctx context.Context) ([]repository.CommitSummary, error) {
	if uc.GitLog == nil {
		return nil, fmt.Errorf("catalog versioning is disabled (set catalog_git to enable it)")
	}
	return uc.GitLog.History(ctx, uc.Limit)
}
