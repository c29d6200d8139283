package service

import (
	"context"

	"github.com/dcx-tools/dcx/internal/domain"
)

// Severity grades a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single lint result.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
}

// LintResult is the outcome of linting one contract.
type LintResult struct {
	Findings []Finding
}

// HasErrors reports whether any finding is error severity.
func (r LintResult) HasErrors() bool {
	for _, finding := range r.Findings {
		if finding.Severity == SeverityError {
			return true
		}
	}
	return false
}

// LintService checks contract documents against the specification rules.

type LintService interface {
	Lint(ctx context.Context, contract *domain.DataContract) (LintResult, error)
}
