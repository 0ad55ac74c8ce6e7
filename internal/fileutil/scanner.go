package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file suffixes to include (e.g., ".kt", ".xml").
	// An empty list matches every regular file.
	Extensions []string
	// FoldCase matches extensions case-insensitively
	FoldCase bool
	// ExcludeDirs is a list of directory names to skip (e.g., "build", ".gradle")
	ExcludeDirs []string
	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Root is the scanned directory with symlinks resolved; Files are under it
	Root string
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory recursively scans a directory for regular files matching the provided options.
// Files are returned sorted by path, compared one component at a time.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}
	// WalkDir does not descend into a root that is itself a symlink.
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}

	result := &ScanResult{
		Root:   root,
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if opts.FoldCase {
			ext = strings.ToLower(ext)
		}
		extMap[ext] = true
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || (opts.SkipHidden && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if len(extMap) > 0 {
			ext := Suffix(d.Name())
			if opts.FoldCase {
				ext = strings.ToLower(ext)
			}
			if !extMap[ext] {
				return nil
			}
		}

		regular, err := isRegular(path, d)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if !regular {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	SortPaths(result.Files)

	return result, nil
}

// isRegular reports whether the entry is a regular file, following symlinks.
// A dangling symlink is not an error; it simply does not match.
func isRegular(path string, d os.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&os.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Suffix returns the final extension of a file name including the dot.
// Names whose only dot is the leading or the trailing character have no
// suffix: Suffix(".kt") and Suffix("build.") are both "".
func Suffix(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// SortPaths sorts paths in place, comparing them component by component so
// that a directory's contents always precede a sibling that merely shares
// its name as a prefix ("a/b" before "a-b").
func SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return ComparePaths(paths[i], paths[j]) < 0
	})
}

// ComparePaths compares two paths component by component.
func ComparePaths(a, b string) int {
	pa := strings.Split(filepath.ToSlash(a), "/")
	pb := strings.Split(filepath.ToSlash(b), "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	default:
		return 0
	}
}
