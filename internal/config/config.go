package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/srcdump/internal/collector"
	"github.com/harrison/srcdump/internal/layout"
	"github.com/harrison/srcdump/internal/logger"
)

// Config represents srcdump configuration options
type Config struct {
	// Extensions lists the file suffixes to collect (e.g., ".kt", ".xml")
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs lists directory names that are never descended into
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// IgnoreCase matches extensions case-insensitively
	IgnoreCase bool `yaml:"ignore_case"`

	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool `yaml:"skip_hidden"`

	// Marker is the path below a project root that holds the sources
	Marker string `yaml:"marker"`

	// NameFromRoot names the report after the start directory when it holds
	// the marker, instead of the directory two levels above the marker
	NameFromRoot bool `yaml:"name_from_root"`

	// OutputDir is where the report is written (empty = beside the executable)
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with the defaults srcdump runs with when no
// file or flag says otherwise
func DefaultConfig() *Config {
	return &Config{
		Extensions:  append([]string(nil), collector.DefaultExtensions...),
		ExcludeDirs: nil,
		Marker:      layout.DefaultMarker,
		OutputDir:   "",
		LogLevel:    "info",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply values present in the file, merging with defaults
	if len(fileCfg.Extensions) > 0 {
		cfg.Extensions = fileCfg.Extensions
	}
	if fileCfg.ExcludeDirs != nil {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if fileCfg.IgnoreCase {
		cfg.IgnoreCase = true
	}
	if fileCfg.SkipHidden {
		cfg.SkipHidden = true
	}
	if fileCfg.Marker != "" {
		cfg.Marker = fileCfg.Marker
	}
	if fileCfg.NameFromRoot {
		cfg.NameFromRoot = true
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = resolveRelative(filepath.Dir(path), fileCfg.OutputDir)
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .srcdump/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".srcdump", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(extensions *[]string, excludeDirs *[]string, marker *string, outputDir *string, logLevel *string) {
	if extensions != nil {
		c.Extensions = *extensions
	}
	if excludeDirs != nil {
		c.ExcludeDirs = *excludeDirs
	}
	if marker != nil {
		c.Marker = *marker
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
}

// Validate validates the configuration values and normalises extensions to
// their dotted form. Returns an error if any values are invalid
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for i, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return fmt.Errorf("invalid extension %q", c.Extensions[i])
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.ContainsAny(ext[1:], `./\`) {
			return fmt.Errorf("invalid extension %q: must be a single suffix like .kt", c.Extensions[i])
		}
		c.Extensions[i] = ext
	}

	marker := filepath.ToSlash(c.Marker)
	if marker == "" {
		return fmt.Errorf("marker cannot be empty")
	}
	if path.IsAbs(marker) || filepath.IsAbs(c.Marker) {
		return fmt.Errorf("marker must be a relative path, got %q", c.Marker)
	}
	for _, part := range strings.Split(marker, "/") {
		if part == ".." {
			return fmt.Errorf("marker must not leave the project root, got %q", c.Marker)
		}
	}

	level := strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !logger.IsValidLevel(level) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	c.LogLevel = level

	return nil
}

func resolveRelative(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
