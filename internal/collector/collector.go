// Package collector gathers source files below a directory into a report.
package collector

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/harrison/srcdump/internal/fileutil"
	"github.com/harrison/srcdump/internal/report"
)

// DefaultExtensions are the suffixes collected when none are configured.
var DefaultExtensions = []string{".kt", ".xml"}

// ErrInvalidUTF8 is recorded for files whose bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 text")

// Logger is the subset of logger.ConsoleLogger the collector reports through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogWarn(message string)
	LogError(message string)
}

// Options configures which files are collected.
type Options struct {
	// Extensions lists the exact suffixes to include, DefaultExtensions when empty
	Extensions []string
	// ExcludeDirs lists directory names to skip anywhere in the tree
	ExcludeDirs []string
	// FoldCase matches extensions case-insensitively
	FoldCase bool
	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool
}

// Entry is one collected file.
type Entry struct {
	// Path is the absolute file path
	Path string
	// RelPath is Path relative to the scanned directory, slash-separated
	RelPath string
	// Content is the file text, or Placeholder(Err) when reading failed
	Content string
	// Err is the read error, nil on success
	Err error
}

// Summary describes a finished run.
type Summary struct {
	RunID       string
	TargetDir   string
	OutputFile  string
	Matched     int
	Written     int
	Unreadable  int
	ScanErrors  int
	BytesOutput int64
}

// Collector scans a directory and writes its matching files to a report.
type Collector struct {
	opts     Options
	logger   Logger
	readFile func(path string) ([]byte, error)
}

// New creates a Collector. A nil logger discards messages.
func New(opts Options, log Logger) *Collector {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Collector{
		opts:     opts,
		logger:   log,
		readFile: os.ReadFile,
	}
}

// SetReadFile replaces the function used to read file contents.
func (c *Collector) SetReadFile(fn func(path string) ([]byte, error)) {
	c.readFile = fn
}

// Scan returns the sorted matching files below dir. The result's Root is dir
// with symlinks resolved. Non-fatal walk errors are logged and kept in the
// result, not returned.
func (c *Collector) Scan(dir string) (*fileutil.ScanResult, error) {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Extensions:  c.opts.Extensions,
		ExcludeDirs: c.opts.ExcludeDirs,
		FoldCase:    c.opts.FoldCase,
		SkipHidden:  c.opts.SkipHidden,
	})
	if err != nil {
		return nil, err
	}

	for _, scanErr := range result.Errors {
		c.logger.LogWarn(scanErr.Error())
	}

	return result, nil
}

// Load reads one file into an Entry relative to root. A read failure is
// recorded in the entry, never returned.
func (c *Collector) Load(root, path string) Entry {
	entry := Entry{Path: path, RelPath: relPath(root, path)}

	content, err := c.readText(path)
	if err != nil {
		entry.Err = err
		entry.Content = Placeholder(err)
		return entry
	}

	entry.Content = content
	return entry
}

// Run scans targetDir and writes every matching file to outputFile, reading
// one file at a time. The report is truncated first; a file that cannot be
// read is written with a placeholder and the run continues.
func (c *Collector) Run(targetDir, outputFile string) (*Summary, error) {
	summary := &Summary{
		RunID:      uuid.NewString(),
		OutputFile: outputFile,
	}
	c.logger.LogDebug(fmt.Sprintf("run %s: extensions %v", summary.RunID, c.opts.Extensions))

	scan, err := c.Scan(targetDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", targetDir, err)
	}
	summary.TargetDir = scan.Root
	summary.Matched = len(scan.Files)
	summary.ScanErrors = len(scan.Errors)

	err = report.Create(outputFile, func(w *report.Writer) error {
		for _, path := range scan.Files {
			c.logger.LogTrace(fmt.Sprintf("reading %s", path))
			entry := c.Load(scan.Root, path)
			if entry.Err != nil {
				summary.Unreadable++
				c.logger.LogWarn(fmt.Sprintf("could not read %s: %v", entry.RelPath, entry.Err))
			} else {
				c.logger.LogDebug(fmt.Sprintf("collected %s (%d bytes)", entry.RelPath, len(entry.Content)))
			}

			if err := w.WriteEntry(report.Entry{Path: entry.RelPath, Content: entry.Content}); err != nil {
				return err
			}
			summary.Written = w.Entries()
		}
		if err := w.Flush(); err != nil {
			return err
		}
		summary.BytesOutput = w.Bytes()
		return nil
	})
	if err != nil {
		c.logger.LogError(fmt.Sprintf("run %s: report %s incomplete, %d of %d files written",
			summary.RunID, outputFile, summary.Written, summary.Matched))
		return nil, fmt.Errorf("write report %s: %w", outputFile, err)
	}

	return summary, nil
}

// Placeholder is the content written in place of a file that could not be read.
func Placeholder(err error) string {
	return fmt.Sprintf("[error reading file: %v]", err)
}

// readText reads a file as UTF-8 text with line endings normalised to "\n".
func (c *Collector) readText(path string) (string, error) {
	data, err := c.readFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidUTF8)
	}
	return normalizeNewlines(data), nil
}

func normalizeNewlines(data []byte) string {
	if bytes.IndexByte(data, '\r') < 0 {
		return string(data)
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return string(data)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

type nopLogger struct{}

func (nopLogger) LogTrace(string) {}
func (nopLogger) LogDebug(string) {}
func (nopLogger) LogWarn(string)  {}
func (nopLogger) LogError(string) {}
