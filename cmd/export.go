package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dcx-tools/dcx/internal/service"
	"github.com/dcx-tools/dcx/internal/usecase"
)

// NewExportCmd creates the export command
func NewExportCmd(c *container) *cobra.Command {
	var (
		exportContract string
		exportFormat   string
		exportOutput   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a data contract in another format",
		Long: `Export re-emits a data contract document as YAML, JSON, or Confluence
Storage Format ready for pasting into a Confluence page.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := service.ParseExportFormat(exportFormat)
			if err != nil {
				return err
			}
			uc := &usecase.ExportContractUseCase{
				SourceRepo: c.sourceRepo,
				ExportSvc:  c.exportSvc,
				Source:     exportContract,
				Format:     format,
			}
			document, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, c, exportOutput, document)
		},
	}
	cmd.Flags().StringVar(&exportContract, "contract", "", "Contract YAML file path or http(s) URL")
	cmd.Flags().StringVar(&exportFormat, "format", string(service.FormatYAML),
		"Output format: yaml, json or confluence")
	cmd.Flags().StringVar(&exportOutput, "output", "", "Output file (default stdout)")
	if err := cmd.MarkFlagRequired("contract"); err != nil {
		panic(err)
	}
	return cmd
}
