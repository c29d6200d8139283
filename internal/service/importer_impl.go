package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/sqlddl"
)

const (
	// DefaultContractTitle is used when an import does not name the contract.
	DefaultContractTitle = "My Data Contract"
	// DefaultContractVersion is used when an import does not version the contract.
	DefaultContractVersion = "0.0.1"
)

// importService is the implementation of the ImportService interface.
type importService struct {
	logger *zap.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(logger *zap.Logger) ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &importService{logger: logger}
}

// ImportDataContract parses SQL DDL and builds a data contract specification.
func (s *importService) ImportDataContract(
	ctx context.Context,
	sql string,
	opts ImportOptions,
) (*domain.DataContract, error) {
	tables, err := s.parseTables(ctx, sql, opts.Dialect)
	if err != nil {
		return nil, err
	}
	contract := domain.NewDataContract(contractID(opts), contractTitle(opts), contractVersion(opts))
	contract.AddServer(opts.Dialect.ServerType())
	for _, table := range tables {
		fields := make(map[string]domain.Field, len(table.Columns))
		for _, column := range table.Columns {
			fields[column.Name] = column.Field(opts.Dialect)
		}
		contract.AddModel(table.Name, domain.Model{
			Type:   "table",
			Fields: fields,
		})
	}
	return contract, nil
}

// ImportOpenDataContract parses SQL DDL and builds an ODCS document.
func (s *importService) ImportOpenDataContract(
	ctx context.Context,
	sql string,
	opts ImportOptions,
) (*domain.OpenDataContract, error) {
	tables, err := s.parseTables(ctx, sql, opts.Dialect)
	if err != nil {
		return nil, err
	}
	contract := domain.NewOpenDataContract(contractID(opts), contractTitle(opts), contractVersion(opts))
	contract.AddServer(opts.Dialect.ServerType())
	for _, table := range tables {
		contract.AddSchema(domain.SchemaObject{
			Name: table.Name,
			Properties: lo.Map(table.Columns, func(column domain.ColumnMetadata, _ int) domain.SchemaProperty {
				return column.SchemaProperty()
			}),
		})
	}
	return contract, nil
}

// parseTables parses the source and extracts metadata for every table.
func (s *importService) parseTables(
	ctx context.Context,
	sql string,
	dialect domain.Dialect,
) ([]domain.TableMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	script, err := sqlddl.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("error parsing SQL: %w", err)
	}
	tables := script.Tables()
	if len(tables) == 0 {
		return nil, fmt.Errorf("no CREATE TABLE statement found in source")
	}
	metadata := make([]domain.TableMetadata, 0, len(tables))
	for _, table := range tables {
		metadata = append(metadata, s.extractTableMetadata(table, dialect))
	}
	return metadata, nil
}

// extractTableMetadata converts a parsed table into dialect-independent
// column metadata.
func (s *importService) extractTableMetadata(
	table *sqlddl.CreateTable,
	dialect domain.Dialect,
) domain.TableMetadata {
	pkColumns := table.PrimaryKeyColumns()
	columns := make([]domain.ColumnMetadata, 0, len(table.Columns))
	for _, column := range table.Columns {
		if dialect == domain.DialectTeradata && column.Type.IsInterval() {
			// INTERVAL columns have no contract representation on Teradata;
			// they are dropped from the model.
			s.logger.Warn("skipping Teradata INTERVAL column",
				zap.String("table", table.Name),
				zap.String("column", column.Name),
				zap.String("type", column.Type.SQL()))
			continue
		}
		columns = append(columns, s.extractColumnMetadata(column, pkColumns, dialect))
	}
	return domain.TableMetadata{
		Name:    strings.ToLower(table.Name),
		Columns: columns,
	}
}

// extractColumnMetadata centralises the column information used by both
// contract output formats.
func (s *importService) extractColumnMetadata(
	column sqlddl.Column,
	pkColumns []string,
	dialect domain.Dialect,
) domain.ColumnMetadata {
	physical := RenderPhysicalType(column.Type, dialect)
	logical := MapLogicalType(physical, dialect)
	if logical == "variant" && !column.Type.IsInterval() {
		s.logger.Warn("column type has no logical mapping",
			zap.String("column", column.Name),
			zap.String("type", physical))
	}
	rendered := renderedTypeSpec(column.Type, dialect)
	precision, scale := TypePrecisionScale(rendered)
	primaryKey := column.PrimaryKey || lo.ContainsBy(pkColumns, func(name string) bool {
		return strings.EqualFold(name, column.Name)
	})
	return domain.ColumnMetadata{
		Name:         column.Name,
		LogicalType:  logical,
		PhysicalType: physical,
		Description:  column.Comment,
		MaxLength:    TypeMaxLength(rendered),
		Precision:    precision,
		Scale:        scale,
		PrimaryKey:   primaryKey,
		Required:     column.NotNull,
	}
}

// renderedTypeSpec applies the dialect renames so length and precision
// extraction sees the same type the contract records.
func renderedTypeSpec(spec sqlddl.TypeSpec, dialect domain.Dialect) sqlddl.TypeSpec {
	rendered := spec
	if dialect == domain.DialectTeradata {
		if name, ok := teradataTypeRenames[spec.Name]; ok {
			rendered.Name = name
		}
	}
	return rendered
}

func contractID(opts ImportOptions) string {
	if opts.ID != "" {
		return opts.ID
	}
	return "urn:datacontract:" + uuid.New().String()
}

func contractTitle(opts ImportOptions) string {
	if opts.Title != "" {
		return opts.Title
	}
	return DefaultContractTitle
}

func contractVersion(opts ImportOptions) string {
	if opts.Version != "" {
		return opts.Version
	}
	return DefaultContractVersion
}
