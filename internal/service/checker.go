package service

import (
	"context"
)

// Violation is a fixture data check failure.
type Violation struct {
	Table   string
	Column  string
	Row     int // 1-based row number within the table's inserts
	Rule    string
	Message string
}

// TableReport summarises the checks run against one table's fixture data.
type TableReport struct {
	Table string
	// Rows is the number of inserted rows that were checked.
	Rows int
	// Violations are the failed checks.
	Violations []Violation
	// Unevaluated lists check constraints the checker cannot interpret.
	Unevaluated []string
}

// CheckReport is the outcome of checking one fixture source.
type CheckReport struct {
	Tables []TableReport
}

// Passed reports whether no violation was found.
func (r CheckReport) Passed() bool {
	for _, table := range r.Tables {
		if len(table.Violations) > 0 {
			return false
		}
	}
	return true
}

// TotalViolations counts all violations across tables.
func (r CheckReport) TotalViolations() int {
	total := 0
	for _, table := range r.Tables {
		total += len(table.Violations)
	}
	return total
}

// CheckService verifies fixture SQL: that inserted rows satisfy the schema's
// declared constraints.

type CheckService interface {
	CheckFixture(ctx context.Context, sql string) (CheckReport, error)
}
