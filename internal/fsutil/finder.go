// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// FindFilesByExtension recursively searches root for files whose extension
// is one of extensions and returns their paths in lexical order.
func FindFilesByExtension(root string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(extensions, filepath.Ext(d.Name())) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ResolvePaths expands path into the files to process. A regular file is
// returned as is, whatever its extension, so the caller can report a bad
// extension; a directory is searched with FindFilesByExtension.
func ResolvePaths(path string, extensions ...string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input %s doesn't exist: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := FindFilesByExtension(path, extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", path, err)
	}
	return files, nil
}
