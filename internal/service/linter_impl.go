package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/dcx-tools/dcx/internal/domain"
)

// lintService is the implementation of the LintService interface.
type lintService struct {
	// skipDescriptionRule disables the missing-description warnings, for
	// fixture-derived contracts that intentionally omit them.
	skipDescriptionRule bool
}

// NewLintService creates a new LintService.
func NewLintService() LintService {
	return &lintService{}
}

// NewLintServiceWithoutDescriptions creates a LintService that does not warn
// about missing field descriptions.
func NewLintServiceWithoutDescriptions() LintService {
	return &lintService{skipDescriptionRule: true}
}

// Lint applies all rules to the contract.
func (s *lintService) Lint(ctx context.Context, contract *domain.DataContract) (LintResult, error) {
	if err := ctx.Err(); err != nil {
		return LintResult{}, err
	}
	if contract == nil {
		return LintResult{}, fmt.Errorf("contract is nil")
	}
	var findings []Finding
	findings = append(findings, s.lintHeader(contract)...)
	findings = append(findings, s.lintModels(contract)...)
	return LintResult{Findings: findings}, nil
}

func (s *lintService) lintHeader(contract *domain.DataContract) []Finding {
	var findings []Finding
	if contract.SpecVersion == "" {
		findings = append(findings, Finding{
			Rule:     "spec-version",
			Severity: SeverityError,
			Message:  "dataContractSpecification is missing",
		})
	}
	if contract.ID == "" {
		findings = append(findings, Finding{
			Rule:     "contract-id",
			Severity: SeverityError,
			Message:  "contract id is missing",
		})
	}
	if contract.Info.Title == "" {
		findings = append(findings, Finding{
			Rule:     "info-title",
			Severity: SeverityError,
			Message:  "info.title is missing",
		})
	}
	if contract.Info.Version == "" {
		findings = append(findings, Finding{
			Rule:     "info-version",
			Severity: SeverityError,
			Message:  "info.version is missing",
		})
	} else if _, err := domain.NewContractVersion(contract.Info.Version); err != nil {
		findings = append(findings, Finding{
			Rule:     "info-version",
			Severity: SeverityError,
			Message:  fmt.Sprintf("info.version %q is not a valid semantic version", contract.Info.Version),
		})
	}
	return findings
}

func (s *lintService) lintModels(contract *domain.DataContract) []Finding {
	var findings []Finding
	if len(contract.Models) == 0 {
		findings = append(findings, Finding{
			Rule:     "models-present",
			Severity: SeverityWarning,
			Message:  "contract defines no models",
		})
		return findings
	}
	modelNames := make([]string, 0, len(contract.Models))
	for name := range contract.Models {
		modelNames = append(modelNames, name)
	}
	sort.Strings(modelNames)
	for _, modelName := range modelNames {
		model := contract.Models[modelName]
		if len(model.Fields) == 0 {
			findings = append(findings, Finding{
				Rule:     "model-fields",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("model %q has no fields", modelName),
			})
			continue
		}
		fieldNames := make([]string, 0, len(model.Fields))
		for name := range model.Fields {
			fieldNames = append(fieldNames, name)
		}
		sort.Strings(fieldNames)
		for _, fieldName := range fieldNames {
			field := model.Fields[fieldName]
			if field.Type == "" {
				findings = append(findings, Finding{
					Rule:     "field-type",
					Severity: SeverityError,
					Message:  fmt.Sprintf("field %s.%s has no type", modelName, fieldName),
				})
			}
			if field.Description == "" && !s.skipDescriptionRule {
				findings = append(findings, Finding{
					Rule:     "field-description",
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("field %s.%s has no description", modelName, fieldName),
				})
			}
		}
	}
	return findings
}
