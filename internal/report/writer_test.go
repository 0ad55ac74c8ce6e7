package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/srcdump/internal/filelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SingleEntry(t *testing.T) {
	got := Render([]Entry{{Path: "java/ru/app/MainActivity.kt", Content: "X"}})
	assert.Equal(t, "java/ru/app/MainActivity.kt:\n```\nX\n```\n\n", got)
}

func TestRender_MultipleEntries(t *testing.T) {
	got := Render([]Entry{
		{Path: "AndroidManifest.xml", Content: "<manifest/>"},
		{Path: "res/values/strings.xml", Content: "<resources>\n</resources>\n"},
		{Path: "Empty.kt", Content: ""},
	})

	want := "AndroidManifest.xml:\n```\n<manifest/>\n```\n\n" +
		"res/values/strings.xml:\n```\n<resources>\n</resources>\n\n```\n\n" +
		"Empty.kt:\n```\n\n```\n\n"
	assert.Equal(t, want, got)
}

func TestRender_NoEntries(t *testing.T) {
	assert.Equal(t, "", Render(nil))
}

func TestWriter_Counters(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	require.NoError(t, w.WriteEntry(Entry{Path: "a.kt", Content: "fun a() {}"}))
	require.NoError(t, w.WriteEntry(Entry{Path: "b.xml", Content: "<b/>"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, 2, w.Entries())
	assert.Equal(t, int64(sb.Len()), w.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter_FlushError(t *testing.T) {
	w := NewWriter(failingWriter{})
	require.NoError(t, w.WriteEntry(Entry{Path: "a.kt", Content: "small"}))

	err := w.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCreate_TruncatesExistingReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "App.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0644))

	err := Create(path, func(w *Writer) error {
		return w.WriteEntry(Entry{Path: "Main.kt", Content: "X"})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Main.kt:\n```\nX\n```\n\n", string(data))

	_, err = os.Stat(filelock.LockPath(path))
	assert.True(t, os.IsNotExist(err), "lock file should be removed")
}

func TestCreate_CallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "App.txt")
	sentinel := errors.New("boom")

	err := Create(path, func(w *Writer) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestCreate_UnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "App.txt")

	err := Create(path, func(w *Writer) error { return nil })
	require.Error(t, err)
}
