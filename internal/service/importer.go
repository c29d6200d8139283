package service

import (
	"context"

	"github.com/dcx-tools/dcx/internal/domain"
)

// ImportOptions controls how SQL DDL is turned into a contract.
type ImportOptions struct {
	// Dialect of the SQL source. Unknown is allowed; physical types are then
	// recorded under the generic "physicalType" config key and no server is
	// added.
	Dialect domain.Dialect
	// ID of the resulting contract. Generated when empty.
	ID string
	// Title of the resulting contract. Defaulted when empty.
	Title string
	// Version of the resulting contract. Defaulted when empty.
	Version string
}

// ImportService turns SQL DDL sources into data contract documents.

type ImportService interface {
	ImportDataContract(ctx context.Context, sql string, opts ImportOptions) (*domain.DataContract, error)
	ImportOpenDataContract(ctx context.Context, sql string, opts ImportOptions) (*domain.OpenDataContract, error)
}
