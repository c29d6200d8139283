package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dcx-tools/dcx/internal/orchestrator"
	"github.com/dcx-tools/dcx/internal/service"
)

// NewPipelineCmd creates the pipeline command
func NewPipelineCmd(c *container) *cobra.Command {
	var (
		pipelineSource    string
		pipelineDialect   string
		pipelineKey       string
		pipelineTitle     string
		pipelineVersion   string
		pipelineRollback  bool
		pipelineSessionID string
	)
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the import, lint and catalog-store workflow",
		Long: `Pipeline runs the whole contract workflow as one compensated unit:
fetch the DDL source, import it, lint the resulting contract, store it
in the catalog and commit the revision. Each step retries with
exponential backoff; when a step ultimately fails, completed steps are
compensated so no partial catalog write survives.

With --rollback, a previously persisted session is compensated instead
of starting a new run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pipelineRollback {
				sessionID := pipelineSessionID
				if sessionID == "" {
					state, err := c.stateRepo.LoadLatestState(cmd.Context())
					if err != nil {
						return err
					}
					sessionID = state.SessionID
				} else {
					exists, err := c.stateRepo.StateExists(cmd.Context(), sessionID)
					if err != nil {
						return err
					}
					if !exists {
						return fmt.Errorf("no pipeline session %s", sessionID)
					}
				}
				if err := orchestrator.Rollback(cmd.Context(), c.stateRepo, c.catalogRepo,
					sessionID, c.logger); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Session %s rolled back.\n", sessionID)
				return nil
			}
			if pipelineSource == "" {
				return fmt.Errorf("--source is required")
			}
			dialect, err := resolveDialect(c, pipelineDialect)
			if err != nil {
				return err
			}
			gitLog, err := c.gitLogRepo()
			if err != nil {
				return err
			}
			pipeline := &orchestrator.ImportPipeline{
				SourceRepo:  c.sourceRepo,
				ImportSvc:   c.importSvc,
				ExportSvc:   c.exportSvc,
				LintSvc:     c.lintSvc,
				CatalogRepo: c.catalogRepo,
				GitLog:      gitLog,
				StateRepo:   c.stateRepo,
				Logger:      c.logger,
				Source:      pipelineSource,
				Key:         pipelineKey,
				Options: service.ImportOptions{
					Dialect: dialect,
					Title:   pipelineTitle,
					Version: pipelineVersion,
				},
			}
			result, err := pipeline.Run(cmd.Context())
			if result != nil {
				printFindings(cmd, result.Findings)
			}
			if err != nil {
				if result != nil {
					return fmt.Errorf("pipeline session %s failed: %w", result.SessionID, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(
				"Pipeline completed: %s stored as %s", result.Entry.Title, result.Entry.Key))
			return nil
		},
	}
	cmd.Flags().StringVar(&pipelineSource, "source", "", "SQL DDL file path or http(s) URL")
	cmd.Flags().StringVar(&pipelineDialect, "dialect", "", "SQL dialect of the source (default from config)")
	cmd.Flags().StringVar(&pipelineKey, "key", "", "Catalog key (derived from the contract title when empty)")
	cmd.Flags().StringVar(&pipelineTitle, "title", "", "Contract title")
	cmd.Flags().StringVar(&pipelineVersion, "contract-version", "", "Contract version")
	cmd.Flags().BoolVar(&pipelineRollback, "rollback", false, "Roll back a failed pipeline session")
	cmd.Flags().
		StringVar(&pipelineSessionID, "session-id", "", "Session ID to rollback (uses latest if not specified)")
	return cmd
}
