package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputDirEnv overrides the directory reports are written to.
const OutputDirEnv = "SRCDUMP_OUTPUT_DIR"

// ResolveOutputDir returns the directory the report is written to
// Priority order:
//  1. configured (from --output-dir or output_dir in the config file)
//  2. SRCDUMP_OUTPUT_DIR environment variable (if set)
//  3. the directory holding the running executable
func ResolveOutputDir(configured string) (string, error) {
	if configured != "" {
		return filepath.Abs(configured)
	}

	if dir := os.Getenv(OutputDirEnv); dir != "" {
		return filepath.Abs(dir)
	}

	return executableDir()
}

// executableDir returns the directory of the running binary with symlinks
// resolved, so an installed symlink still writes beside the real binary
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}
