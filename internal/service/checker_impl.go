package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dcx-tools/dcx/internal/sqlddl"
)

// checkService is the implementation of the CheckService interface.
type checkService struct {
	logger *zap.Logger
}

// NewCheckService creates a new CheckService.
func NewCheckService(logger *zap.Logger) CheckService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &checkService{logger: logger}
}

// CheckFixture parses a fixture source and verifies every inserted row
// against the declared constraints of its table.
func (s *checkService) CheckFixture(ctx context.Context, sql string) (CheckReport, error) {
	if err := ctx.Err(); err != nil {
		return CheckReport{}, err
	}
	script, err := sqlddl.Parse(sql)
	if err != nil {
		return CheckReport{}, fmt.Errorf("error parsing SQL: %w", err)
	}
	tables := script.Tables()
	if len(tables) == 0 {
		return CheckReport{}, fmt.Errorf("no CREATE TABLE statement found in source")
	}
	report := CheckReport{}
	for _, table := range tables {
		report.Tables = append(report.Tables, s.checkTable(table, script.Inserts(table.Name)))
	}
	return report, nil
}

func (s *checkService) checkTable(table *sqlddl.CreateTable, inserts []*sqlddl.Insert) TableReport {
	report := TableReport{Table: table.Name}
	for _, check := range table.Checks() {
		if check.Between == nil {
			report.Unevaluated = append(report.Unevaluated, check.Raw)
			s.logger.Warn("check constraint is not evaluable",
				zap.String("table", table.Name),
				zap.String("check", check.Raw))
		}
	}
	pkColumns := table.PrimaryKeyColumns()
	seenKeys := map[string]int{}
	rowNum := 0
	for _, insert := range inserts {
		columns := insert.Columns
		if len(columns) == 0 {
			columns = allColumnNames(table)
		}
		for _, row := range insert.Rows {
			rowNum++
			report.Rows++
			if len(row) != len(columns) {
				report.Violations = append(report.Violations, Violation{
					Table: table.Name,
					Row:   rowNum,
					Rule:  "row-arity",
					Message: fmt.Sprintf("row has %d values for %d columns",
						len(row), len(columns)),
				})
				continue
			}
			values := rowValues(columns, row)
			report.Violations = append(report.Violations,
				s.checkRow(table, columns, values, rowNum)...)
			report.Violations = append(report.Violations,
				s.checkPrimaryKey(table, pkColumns, values, seenKeys, rowNum)...)
		}
	}
	return report
}

// checkRow verifies NOT NULL, declared lengths and range check constraints
// for a single row.
func (s *checkService) checkRow(
	table *sqlddl.CreateTable,
	columns []string,
	values map[string]sqlddl.Value,
	rowNum int,
) []Violation {
	var violations []Violation
	for _, name := range columns {
		column := table.Column(name)
		if column == nil {
			violations = append(violations, Violation{
				Table:   table.Name,
				Column:  name,
				Row:     rowNum,
				Rule:    "unknown-column",
				Message: fmt.Sprintf("column %s is not defined on table %s", name, table.Name),
			})
			continue
		}
		value := values[strings.ToLower(name)]
		if column.NotNull && value.IsNull() {
			violations = append(violations, Violation{
				Table:   table.Name,
				Column:  column.Name,
				Row:     rowNum,
				Rule:    "not-null",
				Message: fmt.Sprintf("column %s is NOT NULL but row %d inserts NULL", column.Name, rowNum),
			})
		}
		if value.Kind == sqlddl.ValueString {
			if max := TypeMaxLength(column.Type); max != nil && utf8.RuneCountInString(value.Text) > *max {
				violations = append(violations, Violation{
					Table:  table.Name,
					Column: column.Name,
					Row:    rowNum,
					Rule:   "max-length",
					Message: fmt.Sprintf("value of length %d exceeds %s(%d)",
						utf8.RuneCountInString(value.Text), column.Type.Name, *max),
				})
			}
		}
	}
	violations = append(violations, s.checkRanges(table, values, rowNum)...)
	return violations
}

// checkRanges evaluates every BETWEEN check constraint against the row.
// NULL values pass, as they do in SQL.
func (s *checkService) checkRanges(
	table *sqlddl.CreateTable,
	values map[string]sqlddl.Value,
	rowNum int,
) []Violation {
	var violations []Violation
	for _, check := range table.Checks() {
		if check.Between == nil {
			continue
		}
		value, ok := values[strings.ToLower(check.Between.Column)]
		if !ok || value.IsNull() || value.Kind != sqlddl.ValueNumber {
			continue
		}
		if !check.Between.Contains(value.Number) {
			violations = append(violations, Violation{
				Table:  table.Name,
				Column: check.Between.Column,
				Row:    rowNum,
				Rule:   "check-range",
				Message: fmt.Sprintf("value %s violates CHECK (%s)",
					value.Text, check.Raw),
			})
		}
	}
	return violations
}

// checkPrimaryKey enforces uniqueness and non-null primary key values.
func (s *checkService) checkPrimaryKey(
	table *sqlddl.CreateTable,
	pkColumns []string,
	values map[string]sqlddl.Value,
	seenKeys map[string]int,
	rowNum int,
) []Violation {
	if len(pkColumns) == 0 {
		return nil
	}
	var violations []Violation
	keyParts := make([]string, 0, len(pkColumns))
	complete := true
	for _, name := range pkColumns {
		value, ok := values[strings.ToLower(name)]
		if !ok || value.IsNull() {
			violations = append(violations, Violation{
				Table:   table.Name,
				Column:  name,
				Row:     rowNum,
				Rule:    "primary-key-null",
				Message: fmt.Sprintf("primary key column %s has no value in row %d", name, rowNum),
			})
			complete = false
			continue
		}
		keyParts = append(keyParts, value.Text)
	}
	if !complete {
		return violations
	}
	key := strings.Join(keyParts, "\x1f")
	if firstRow, seen := seenKeys[key]; seen {
		violations = append(violations, Violation{
			Table:  table.Name,
			Column: strings.Join(pkColumns, ","),
			Row:    rowNum,
			Rule:   "unique-primary-key",
			Message: fmt.Sprintf("primary key (%s) duplicates row %d",
				strings.Join(keyParts, ","), firstRow),
		})
	} else {
		seenKeys[key] = rowNum
	}
	return violations
}

func allColumnNames(table *sqlddl.CreateTable) []string {
	names := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		names = append(names, column.Name)
	}
	return names
}

func rowValues(columns []string, row []sqlddl.Value) map[string]sqlddl.Value {
	values := make(map[string]sqlddl.Value, len(columns))
	for i, name := range columns {
		if i < len(row) {
			values[strings.ToLower(name)] = row[i]
		}
	}
	return values
}
