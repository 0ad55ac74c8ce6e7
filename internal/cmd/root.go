package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for srcdump.
// Run without a subcommand it produces the report.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srcdump",
		Short: "Flatten a project's Kotlin and XML sources into one text report",
		Long: `srcdump finds the project's app/src/main directory (in the working
directory or the nearest ancestor that has one), collects every .kt and .xml
file below it, and writes them into <project>.txt beside the srcdump binary.

Each file appears as its relative path followed by its content in a fenced
block. Files that cannot be read are kept in the report with an error
placeholder instead of their content.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runDumpCommand,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	addDumpFlags(cmd)

	cmd.AddCommand(NewInspectCommand())

	return cmd
}
