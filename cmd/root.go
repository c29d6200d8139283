package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dcx",
	Short: "A CLI tool for turning SQL DDL into data contracts",
	Long: `dcx imports SQL DDL into data contract documents, lints and exports
them, verifies fixture data against declared constraints, and keeps a
versioned local catalog of stored contracts.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
