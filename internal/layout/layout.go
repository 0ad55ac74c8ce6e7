// Package layout locates the source root of a project from a starting
// directory. The default convention is the Android/Gradle one, where sources
// live under <project>/app/src/main.
package layout

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultMarker is the path, relative to a project root, that identifies it.
const DefaultMarker = "app/src/main"

// fallbackName names the report when the start directory has no base name
// (the filesystem root).
const fallbackName = "report"

// Target is the outcome of resolving a start directory.
type Target struct {
	// Dir is the directory to scan
	Dir string
	// AppName names the report file
	AppName string
	// Found is false when no marker was found and Dir fell back to the start directory
	Found bool
}

// Resolver finds the nearest project root carrying Marker.
type Resolver struct {
	// Marker is the slash-separated path checked under each candidate root
	Marker string
	// IsDir reports whether a path is an existing directory; defaults to os.Stat
	IsDir func(path string) bool
	// NameFromRoot names a marker found under the start directory after the
	// start directory instead of the marker's grandparent
	NameFromRoot bool
}

// NewResolver creates a Resolver probing the filesystem for marker.
// An empty marker selects DefaultMarker.
func NewResolver(marker string) *Resolver {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Resolver{Marker: marker, IsDir: isDir}
}

// Locate checks start and then each of its ancestors, nearest first, for the
// marker. The filesystem root itself is never checked. It returns the marker
// directory and the application name: for a marker under start, the name of
// the directory two levels above the marker directory, but not above start
// ("app" for app/src/main); for a marker under an ancestor, that ancestor's
// name.
func (r *Resolver) Locate(start string) (dir, appName string, ok bool) {
	check := r.IsDir
	if check == nil {
		check = isDir
	}
	marker := filepath.FromSlash(strings.Trim(r.Marker, "/"))

	// Start directory first
	candidate := filepath.Join(start, marker)
	if check(candidate) {
		named := filepath.Dir(filepath.Dir(candidate))
		// Single-segment markers have no grandparent below start.
		if r.NameFromRoot || len(named) < len(start) {
			named = start
		}
		return candidate, filepath.Base(named), true
	}

	current := filepath.Dir(start)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", "", false
		}

		candidate := filepath.Join(current, marker)
		if check(candidate) {
			return candidate, filepath.Base(current), true
		}
		current = parent
	}
}

// Resolve returns the scan target for start. When no project root is found
// the start directory itself is used, named after its own base name.
func (r *Resolver) Resolve(start string) Target {
	start = filepath.Clean(start)

	if dir, name, ok := r.Locate(start); ok {
		return Target{Dir: dir, AppName: reportName(name), Found: true}
	}

	return Target{Dir: start, AppName: reportName(filepath.Base(start)), Found: false}
}

// ReportFile returns the report path for target inside outputDir.
func ReportFile(outputDir string, target Target) string {
	return filepath.Join(outputDir, target.AppName+".txt")
}

func reportName(name string) string {
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallbackName
	}
	return name
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
