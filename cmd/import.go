package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/service"
	"github.com/dcx-tools/dcx/internal/usecase"
)

// NewImportCmd creates the import command
func NewImportCmd(c *container) *cobra.Command {
	var (
		importSource  string
		importDialect string
		importSpec    string
		importFormat  string
		importOutput  string
		importID      string
		importTitle   string
		importVersion string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import SQL DDL as a data contract",
		Long: `Import CREATE TABLE statements from a local file or http(s) URL and
emit a data contract document describing the tables, columns, types and
constraints they declare.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dialect, err := resolveDialect(c, importDialect)
			if err != nil {
				return err
			}
			spec, err := usecase.ParseOutputSpec(importSpec)
			if err != nil {
				return err
			}
			format, err := service.ParseExportFormat(importFormat)
			if err != nil {
				return err
			}
			uc := &usecase.ImportSQLUseCase{
				SourceRepo: c.sourceRepo,
				ImportSvc:  c.importSvc,
				ExportSvc:  c.exportSvc,
				Source:     importSource,
				Spec:       spec,
				Format:     format,
				Options: service.ImportOptions{
					Dialect: dialect,
					ID:      importID,
					Title:   importTitle,
					Version: importVersion,
				},
			}
			document, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, c, importOutput, document)
		},
	}
	cmd.Flags().StringVar(&importSource, "source", "", "SQL DDL file path or http(s) URL")
	cmd.Flags().StringVar(&importDialect, "dialect", "", "SQL dialect of the source (default from config)")
	cmd.Flags().StringVar(&importSpec, "spec", string(usecase.SpecDataContract),
		"Output contract standard: datacontract or odcs")
	cmd.Flags().StringVar(&importFormat, "format", string(service.FormatYAML), "Output format: yaml or json")
	cmd.Flags().StringVar(&importOutput, "output", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&importID, "id", "", "Contract ID (generated when empty)")
	cmd.Flags().StringVar(&importTitle, "title", "", "Contract title")
	cmd.Flags().StringVar(&importVersion, "contract-version", "", "Contract version")
	if err := cmd.MarkFlagRequired("source"); err != nil {
		panic(err)
	}
	return cmd
}

func resolveDialect(c *container, name string) (domain.Dialect, error) {
	if name == "" {
		name = c.cfg.DefaultDialect
	}
	return domain.ParseDialect(name)
}

func writeOutput(cmd *cobra.Command, c *container, output string, document []byte) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(document)
		return err
	}
	if err := afero.WriteFile(c.fsRepo, output, document, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
