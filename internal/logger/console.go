// Package logger provides console logging for srcdump runs.
//
// ConsoleLogger writes leveled, timestamped lines and the run-specific
// progress messages (scan start, completion summary). Color output is enabled
// automatically when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/srcdump/internal/collector"
	"github.com/harrison/srcdump/internal/layout"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything else means "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    NormalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
		now:         time.Now,
	}
}

// isTerminal reports whether w is a TTY that should receive colors.
// NO_COLOR disables colors through fatih/color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NormalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" for empty or invalid levels.
func NormalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if IsValidLevel(normalized) {
		return normalized
	}
	return "info"
}

// IsValidLevel reports whether level is one of trace, debug, info, warn, error.
func IsValidLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", cl.timestamp(), label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgBlue)
	}
}

// LogScanStart logs the resolved scan directory and report path at INFO level.
// Format:
//
//	[HH:MM:SS] Scanning directory: <dir>
//	[HH:MM:SS] Report will be saved to: <path>
func (cl *ConsoleLogger) LogScanStart(target layout.Target, outputFile string) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.timestamp()
	dir, out := target.Dir, outputFile
	if cl.colorOutput {
		dir = color.New(color.Bold).Sprint(dir)
		out = color.New(color.Bold).Sprint(out)
	}
	fmt.Fprintf(cl.writer, "[%s] Scanning directory: %s\n", ts, dir)
	fmt.Fprintf(cl.writer, "[%s] Report will be saved to: %s\n", ts, out)
}

// LogSummary logs the completion line at INFO level.
// Format: "[HH:MM:SS] Done: <n> files written (<u> unreadable, <e> scan errors) in <duration> [run <id>]"
func (cl *ConsoleLogger) LogSummary(summary collector.Summary, duration time.Duration) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	done := "Done"
	written := fmt.Sprintf("%d files written", summary.Written)
	unreadable := fmt.Sprintf("%d unreadable", summary.Unreadable)
	scanErrors := fmt.Sprintf("%d scan errors", summary.ScanErrors)
	if cl.colorOutput {
		done = color.New(color.FgGreen, color.Bold).Sprint(done)
		written = color.New(color.FgGreen).Sprint(written)
		if summary.Unreadable > 0 {
			unreadable = color.New(color.FgRed).Sprint(unreadable)
		}
		if summary.ScanErrors > 0 {
			scanErrors = color.New(color.FgYellow).Sprint(scanErrors)
		}
	}

	line := fmt.Sprintf("[%s] %s: %s (%s, %s) in %s",
		cl.timestamp(), done, written, unreadable, scanErrors, formatDuration(duration))
	if summary.RunID != "" {
		line += fmt.Sprintf(" [run %s]", summary.RunID)
	}
	fmt.Fprintln(cl.writer, line)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func (cl *ConsoleLogger) timestamp() string {
	return cl.now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "120ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
