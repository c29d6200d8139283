package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dcx-tools/dcx/internal/service"
	"github.com/dcx-tools/dcx/internal/usecase"
)

// NewCatalogCmd creates the catalog command group
func NewCatalogCmd(c *container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local contract catalog",
	}
	cmd.AddCommand(newCatalogAddCmd(c))
	cmd.AddCommand(newCatalogListCmd(c))
	cmd.AddCommand(newCatalogShowCmd(c))
	cmd.AddCommand(newCatalogHistoryCmd(c))
	return cmd
}

func newCatalogAddCmd(c *container) *cobra.Command {
	var (
		addSource  string
		addDialect string
		addKey     string
		addTitle   string
		addVersion string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Import a DDL source and store the contract in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dialect, err := resolveDialect(c, addDialect)
			if err != nil {
				return err
			}
			gitLog, err := c.gitLogRepo()
			if err != nil {
				return err
			}
			uc := &usecase.CatalogAddUseCase{
				SourceRepo:  c.sourceRepo,
				ImportSvc:   c.importSvc,
				ExportSvc:   c.exportSvc,
				CatalogRepo: c.catalogRepo,
				GitLog:      gitLog,
				Source:      addSource,
				Key:         addKey,
				Options: service.ImportOptions{
					Dialect: dialect,
					Title:   addTitle,
					Version: addVersion,
				},
			}
			entry, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%s) as %s\n", entry.Title, entry.Version, entry.Key)
			return nil
		},
	}
	cmd.Flags().StringVar(&addSource, "source", "", "SQL DDL file path or http(s) URL")
	cmd.Flags().StringVar(&addDialect, "dialect", "", "SQL dialect of the source (default from config)")
	cmd.Flags().StringVar(&addKey, "key", "", "Catalog key (derived from the contract title when empty)")
	cmd.Flags().StringVar(&addTitle, "title", "", "Contract title")
	cmd.Flags().StringVar(&addVersion, "contract-version", "", "Contract version")
	if err := cmd.MarkFlagRequired("source"); err != nil {
		panic(err)
	}
	return cmd
}

func newCatalogListCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contracts stored in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := &usecase.CatalogListUseCase{CatalogRepo: c.catalogRepo}
			entries, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Catalog is empty.")
				return nil
			}
			table := uitable.New()
			table.AddRow("KEY", "TITLE", "VERSION", "DIALECT", "STORED")
			for _, entry := range entries {
				table.AddRow(entry.Key, entry.Title, entry.Version, entry.Dialect,
					entry.StoredAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newCatalogHistoryCmd(c *container) *cobra.Command {
	var historyLimit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the catalog's commit history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gitLog, err := c.gitLogRepo()
			if err != nil {
				return err
			}
			uc := &usecase.CatalogHistoryUseCase{
				GitLog: gitLog,
				Limit:  historyLimit,
			}
			commits, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(commits) == 0 {
				fmt.Fprintln(out, "Catalog has no history yet.")
				return nil
			}
			table := uitable.New()
			table.AddRow("HASH", "DATE", "MESSAGE")
			for _, commit := range commits {
				table.AddRow(shortHash(commit.Hash), commit.When.Format("2006-01-02 15:04:05"), commit.Message)
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
	cmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of commits to show (0 for all)")
	return cmd
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func newCatalogShowCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Print a stored contract document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := &usecase.CatalogShowUseCase{
				CatalogRepo: c.catalogRepo,
				Key:         args[0],
			}
			_, document, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(document)
			return err
		},
	}
}
