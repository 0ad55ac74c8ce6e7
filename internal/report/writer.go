// Package report reads and writes the flattened source report.
//
// A report is a sequence of entries, each rendered as
//
//	<relative/path>:
//	```
//	<content>
//	```
//	<blank line>
//
// which is also valid CommonMark: a paragraph naming the file followed by a
// fenced code block. Parse relies on that to read reports back.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/srcdump/internal/filelock"
)

// Fence opens and closes every content block.
const Fence = "```"

// Entry is one file in the report.
type Entry struct {
	// Path is the slash-separated path relative to the scanned directory
	Path string
	// Content is the file text, or a placeholder when it could not be read
	Content string
}

// Writer renders entries to an underlying io.Writer.
type Writer struct {
	bw      *bufio.Writer
	entries int
	bytes   int64
}

// NewWriter creates a buffered report Writer. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteEntry appends one entry.
func (w *Writer) WriteEntry(e Entry) error {
	for _, part := range []string{e.Path, ":\n", Fence, "\n", e.Content, "\n", Fence, "\n\n"} {
		n, err := w.bw.WriteString(part)
		w.bytes += int64(n)
		if err != nil {
			return fmt.Errorf("write entry %s: %w", e.Path, err)
		}
	}
	w.entries++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// Entries returns the number of entries written so far.
func (w *Writer) Entries() int {
	return w.entries
}

// Bytes returns the number of bytes written so far.
func (w *Writer) Bytes() int64 {
	return w.bytes
}

// Render returns the report text for entries.
func Render(entries []Entry) string {
	var sb strings.Builder
	w := NewWriter(&sb)
	for _, e := range entries {
		// strings.Builder never fails
		_ = w.WriteEntry(e)
	}
	_ = w.Flush()
	return sb.String()
}

// Create truncates (or creates) the report at path and hands fn a Writer for
// it. The file is flushed and closed on return, and a sidecar lock keeps a
// second writer from interleaving with this one.
func Create(path string, fn func(*Writer) error) error {
	return filelock.WithLock(path, func() error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}

		w := NewWriter(f)
		if err := fn(w); err != nil {
			f.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close report: %w", err)
		}
		return nil
	})
}
