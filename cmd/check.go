package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dcx-tools/dcx/internal/usecase"
)

// NewCheckCmd creates the check command
func NewCheckCmd(c *container) *cobra.Command {
	var checkSource string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify fixture data against its schema's constraints",
		Long: `Check parses a fixture script containing CREATE TABLE and INSERT
statements and verifies the inserted rows against the constraints the
schema declares: NOT NULL, maximum string lengths, BETWEEN check
constraints and primary key uniqueness. Constraints the checker cannot
interpret are reported, not guessed at.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := &usecase.CheckFixtureUseCase{
				SourceRepo: c.sourceRepo,
				CheckSvc:   c.checkSvc,
				Source:     checkSource,
			}
			report, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, table := range report.Tables {
				fmt.Fprintf(out, "%s: %d rows checked\n", table.Table, table.Rows)
				for _, raw := range table.Unevaluated {
					fmt.Fprintf(out, "  %s %s\n", color.YellowString("SKIP"),
						fmt.Sprintf("cannot evaluate check constraint: %s", raw))
				}
				if len(table.Violations) > 0 {
					violations := uitable.New()
					violations.AddRow("  ROW", "COLUMN", "RULE", "MESSAGE")
					for _, v := range table.Violations {
						violations.AddRow(fmt.Sprintf("  %d", v.Row), v.Column, v.Rule, v.Message)
					}
					fmt.Fprintln(out, violations)
				}
			}
			if !report.Passed() {
				return fmt.Errorf("%d fixture violations found", report.TotalViolations())
			}
			fmt.Fprintln(out, color.GreenString("All fixture checks passed."))
			return nil
		},
	}
	cmd.Flags().StringVar(&checkSource, "source", "", "Fixture SQL file path or http(s) URL")
	if err := cmd.MarkFlagRequired("source"); err != nil {
		panic(err)
	}
	return cmd
}
