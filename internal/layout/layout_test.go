package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0755))
	}
}

func TestResolve_StartDirectoryHasMarker(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "PowerWatchdog")
	mainDir := filepath.Join(project, "app", "src", "main")
	mkdirs(t, mainDir)

	target := NewResolver("").Resolve(project)

	assert.True(t, target.Found)
	assert.Equal(t, mainDir, target.Dir)
	assert.Equal(t, "app", target.AppName)
}

func TestResolve_NameFromRoot(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "PowerWatchdog")
	mkdirs(t, filepath.Join(project, "app", "src", "main"))

	r := NewResolver("")
	r.NameFromRoot = true

	assert.Equal(t, "PowerWatchdog", r.Resolve(project).AppName)

	// Ancestor matches are named after the ancestor either way.
	nested := filepath.Join(project, "docs")
	mkdirs(t, nested)
	assert.Equal(t, "PowerWatchdog", r.Resolve(nested).AppName)
	assert.Equal(t, "PowerWatchdog", NewResolver("").Resolve(nested).AppName)
}

func TestResolve_StartDirectoryNamedAfterMarkerGrandparent(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "Lib")
	mkdirs(t, filepath.Join(project, "src", "main"))

	target := NewResolver("src/main").Resolve(project)

	assert.True(t, target.Found)
	assert.Equal(t, "Lib", target.AppName)
}

func TestResolve_StartDirectoryWinsOverAncestor(t *testing.T) {
	root := t.TempDir()
	outer := filepath.Join(root, "Outer")
	inner := filepath.Join(outer, "modules", "Inner")
	mkdirs(t,
		filepath.Join(outer, "app", "src", "main"),
		filepath.Join(inner, "app", "src", "main"),
	)

	target := NewResolver("").Resolve(inner)

	assert.True(t, target.Found)
	assert.Equal(t, filepath.Join(inner, "app", "src", "main"), target.Dir)
	assert.Equal(t, "app", target.AppName)
}

func TestResolve_NearestAncestorWins(t *testing.T) {
	root := t.TempDir()
	far := filepath.Join(root, "Far")
	near := filepath.Join(far, "Near")
	start := filepath.Join(near, "app", "src", "main", "java", "ru")
	mkdirs(t,
		filepath.Join(far, "app", "src", "main"),
		start,
	)

	target := NewResolver("").Resolve(start)

	assert.True(t, target.Found)
	assert.Equal(t, filepath.Join(near, "app", "src", "main"), target.Dir)
	assert.Equal(t, "Near", target.AppName)
}

func TestResolve_MarkerMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "Project")
	mkdirs(t, filepath.Join(project, "app", "src"))
	require.NoError(t, os.WriteFile(filepath.Join(project, "app", "src", "main"), []byte("not a dir"), 0644))

	target := NewResolver("").Resolve(project)

	assert.False(t, target.Found)
	assert.Equal(t, project, target.Dir)
}

func TestResolve_Fallback(t *testing.T) {
	root := t.TempDir()
	start := filepath.Join(root, "scratch")
	mkdirs(t, start)

	// An ancestor outside the temp dir could carry the marker on a developer
	// machine, so check through a filter that only sees the temp tree.
	r := NewResolver("")
	r.IsDir = func(path string) bool {
		return strings.HasPrefix(path, root+string(filepath.Separator)) && isDir(path)
	}

	target := r.Resolve(start)

	assert.False(t, target.Found)
	assert.Equal(t, start, target.Dir)
	assert.Equal(t, "scratch", target.AppName)
}

func TestResolve_CustomMarker(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "Lib")
	start := filepath.Join(project, "docs")
	mkdirs(t, filepath.Join(project, "src", "commonMain"), start)

	target := NewResolver("src/commonMain").Resolve(start)

	assert.True(t, target.Found)
	assert.Equal(t, filepath.Join(project, "src", "commonMain"), target.Dir)
	assert.Equal(t, "Lib", target.AppName)
}

func TestLocate_CheckOrder(t *testing.T) {
	start := filepath.FromSlash("/work/a/b")
	var checked []string
	r := &Resolver{
		Marker: DefaultMarker,
		IsDir: func(path string) bool {
			checked = append(checked, path)
			return false
		},
	}

	_, _, ok := r.Locate(start)

	assert.False(t, ok)
	marker := filepath.FromSlash(DefaultMarker)
	assert.Equal(t, []string{
		filepath.Join(start, marker),
		filepath.Join(filepath.FromSlash("/work/a"), marker),
		filepath.Join(filepath.FromSlash("/work"), marker),
	}, checked, "filesystem root must not be checked")
}

func TestResolve_RootHasNoName(t *testing.T) {
	r := &Resolver{Marker: DefaultMarker, IsDir: func(string) bool { return false }}

	target := r.Resolve(string(filepath.Separator))

	assert.False(t, target.Found)
	assert.Equal(t, "report", target.AppName)
}

func TestReportFile(t *testing.T) {
	out := t.TempDir()
	got := ReportFile(out, Target{Dir: "/x/app/src/main", AppName: "PowerWatchdog"})
	assert.Equal(t, filepath.Join(out, "PowerWatchdog.txt"), got)
}

func TestResolve_SingleSegmentMarkerNamedAfterStart(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "Tool")
	mkdirs(t, filepath.Join(project, "src"))

	target := NewResolver("src").Resolve(project)

	assert.True(t, target.Found)
	assert.Equal(t, "Tool", target.AppName)
}
