// Package fileutil provides the directory scanner used to find source files.
//
// ScanDirectory walks a tree recursively and returns the absolute paths of the
// regular files whose suffix is in ScanOptions.Extensions. Results are sorted
// with ComparePaths, which orders paths one component at a time, the same
// order a lexical depth-first walk produces.
//
// # Error tolerance
//
// Failing to open the root is fatal. Anything below the root that cannot be
// read (an unreadable subdirectory, a symlink whose target cannot be
// stat'ed) is recorded in ScanResult.Errors and the walk continues.
//
// # Suffix rules
//
// Suffix follows the usual "last dot" convention with two exceptions: a
// leading dot does not start a suffix (".kt" has none) and neither does a
// trailing one ("file." has none). Matching is case-sensitive unless
// ScanOptions.FoldCase is set.
//
// # Usage
//
//	result, err := fileutil.ScanDirectory("/path/to/app/src/main", fileutil.ScanOptions{
//	    Extensions: []string{".kt", ".xml"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
package fileutil
