package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/srcdump/internal/collector"
	"github.com/harrison/srcdump/internal/config"
	"github.com/harrison/srcdump/internal/layout"
	"github.com/harrison/srcdump/internal/logger"
)

func addDumpFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "Directory to start the search from (default: working directory)")
	cmd.Flags().String("config", "", "Path to config file (default: <dir>/.srcdump/config.yaml)")
	cmd.Flags().String("output-dir", "", "Directory for the report (default: beside the srcdump binary)")
	cmd.Flags().StringSlice("ext", nil, "File extension to collect, repeatable (default: .kt,.xml)")
	cmd.Flags().StringSlice("exclude", nil, "Directory name to skip, repeatable")
	cmd.Flags().String("marker", "", "Sources path below the project root (default: app/src/main)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
}

func runDumpCommand(cmd *cobra.Command, args []string) error {
	startDir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")

	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	startDir, err := filepath.Abs(startDir)
	if err != nil {
		return fmt.Errorf("resolve start directory: %w", err)
	}
	// Getwd may return $PWD, which can run through a symlink; ancestors are
	// searched along the physical path.
	startDir, err = filepath.EvalSymlinks(startDir)
	if err != nil {
		return fmt.Errorf("resolve start directory: %w", err)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(startDir)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Only flags the user actually set override the config file
	var extensions, excludeDirs *[]string
	var marker, outputDir, logLevel *string
	if cmd.Flags().Changed("ext") {
		v, _ := cmd.Flags().GetStringSlice("ext")
		extensions = &v
	}
	if cmd.Flags().Changed("exclude") {
		v, _ := cmd.Flags().GetStringSlice("exclude")
		excludeDirs = &v
	}
	if cmd.Flags().Changed("marker") {
		v, _ := cmd.Flags().GetString("marker")
		marker = &v
	}
	if cmd.Flags().Changed("output-dir") {
		v, _ := cmd.Flags().GetString("output-dir")
		outputDir = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	cfg.MergeWithFlags(extensions, excludeDirs, marker, outputDir, logLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	_, err = runDump(startDir, cfg, cmd.OutOrStdout())
	return err
}

// runDump resolves the target for startDir and writes its report.
func runDump(startDir string, cfg *config.Config, out io.Writer) (*collector.Summary, error) {
	log := logger.NewConsoleLogger(out, cfg.LogLevel)

	resolver := layout.NewResolver(cfg.Marker)
	resolver.NameFromRoot = cfg.NameFromRoot
	target := resolver.Resolve(startDir)
	if !target.Found {
		log.LogWarn(fmt.Sprintf("Could not find %s; scanning the current directory instead", cfg.Marker))
	}

	outputDir, err := config.ResolveOutputDir(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	outputFile := layout.ReportFile(outputDir, target)

	log.LogScanStart(target, outputFile)

	c := collector.New(collector.Options{
		Extensions:  cfg.Extensions,
		ExcludeDirs: cfg.ExcludeDirs,
		FoldCase:    cfg.IgnoreCase,
		SkipHidden:  cfg.SkipHidden,
	}, log)

	started := time.Now()
	summary, err := c.Run(target.Dir, outputFile)
	if err != nil {
		return nil, err
	}

	log.LogSummary(*summary, time.Since(started))
	return summary, nil
}
