package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/srcdump/internal/report"
)

// NewInspectCommand creates and returns the inspect subcommand
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <report-file>",
		Short: "List the files contained in a report",
		Long: `Read a report produced by srcdump and list its entries with their
line and byte counts. With --show, print the content of one entry instead.

Exit code: 0 if the report could be read, 1 otherwise`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, _ := cmd.Flags().GetString("show")
			return inspectReport(args[0], show, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("show", "", "Print the content of the entry with this relative path")

	return cmd
}

func inspectReport(path, show string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	entries, err := report.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if show != "" {
		for _, e := range entries {
			if e.Path == show {
				fmt.Fprintln(out, e.Content)
				return nil
			}
		}
		return fmt.Errorf("no entry %q in %s", show, path)
	}

	var totalBytes int
	for _, e := range entries {
		fmt.Fprintf(out, "%s\t%d lines\t%d bytes\n", e.Path, lineCount(e.Content), len(e.Content))
		totalBytes += len(e.Content)
	}
	fmt.Fprintf(out, "%d files, %d bytes\n", len(entries), totalBytes)

	return nil
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
