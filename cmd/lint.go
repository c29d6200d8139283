package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dcx-tools/dcx/internal/service"
	"github.com/dcx-tools/dcx/internal/usecase"
)

// NewLintCmd creates the lint command
func NewLintCmd(c *container) *cobra.Command {
	var lintContract string
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Lint a data contract document",
		Long: `Lint checks a data contract document against the specification rules:
known spec version, id and info present, semver version, typed model
fields. The command exits non-zero when any error-severity finding is
reported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := &usecase.LintContractUseCase{
				SourceRepo: c.sourceRepo,
				LintSvc:    c.lintSvc,
				Source:     lintContract,
			}
			result, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			printFindings(cmd, result.Findings)
			if result.HasErrors() {
				return fmt.Errorf("contract has lint errors")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lintContract, "contract", "", "Contract YAML file path or http(s) URL")
	if err := cmd.MarkFlagRequired("contract"); err != nil {
		panic(err)
	}
	return cmd
}

func printFindings(cmd *cobra.Command, findings []service.Finding) {
	out := cmd.OutOrStdout()
	if len(findings) == 0 {
		fmt.Fprintln(out, color.GreenString("No findings."))
		return
	}
	table := uitable.New()
	table.AddRow("SEVERITY", "RULE", "MESSAGE")
	for _, finding := range findings {
		severity := string(finding.Severity)
		switch finding.Severity {
		case service.SeverityError:
			severity = color.RedString(severity)
		case service.SeverityWarning:
			severity = color.YellowString(severity)
		}
		table.AddRow(severity, finding.Rule, finding.Message)
	}
	fmt.Fprintln(out, table)
}
