package service

import (
	"context"
	"fmt"

	"github.com/dcx-tools/dcx/internal/domain"
)

// ExportFormat names a supported contract output format.
type ExportFormat string

const (
	FormatYAML       ExportFormat = "yaml"
	FormatJSON       ExportFormat = "json"
	FormatConfluence ExportFormat = "confluence"
)

// ParseExportFormat validates a user-supplied format name.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch ExportFormat(name) {
	case FormatYAML, FormatJSON, FormatConfluence:
		return ExportFormat(name), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", name)
	}
}

// ExportService renders contract documents into output formats.

type ExportService interface {
	ExportDataContract(ctx context.Context, contract *domain.DataContract, format ExportFormat) ([]byte, error)
	ExportOpenDataContract(ctx context.Context, contract *domain.OpenDataContract, format ExportFormat) ([]byte, error)
}
