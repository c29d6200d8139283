package repository

import (
	"context"

	"github.com/dcx-tools/dcx/internal/domain"
)

// CatalogRepository stores contract documents in the local catalog.

type CatalogRepository interface {
	Save(ctx context.Context, entry *domain.CatalogEntry, contract []byte) error
	Load(ctx context.Context, key string) (*domain.CatalogEntry, []byte, error)
	List(ctx context.Context) ([]domain.CatalogEntry, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
