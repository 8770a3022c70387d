// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension. It returns a slice of their full paths
// in walk order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == extension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// CollectFiles resolves a mix of file and directory paths into a sorted,
// de-duplicated list of files with the given extension. Directories are
// searched recursively; a path given explicitly must exist and, if it is a
// file, carry the extension.
func CollectFiles(paths []string, extension string) ([]string, error) {
	seen := make(map[string]struct{})
	var all []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		all = append(all, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) != extension {
				return nil, fmt.Errorf("not a %s file: %s", extension, path)
			}
			add(path)
			continue
		}

		found, err := FindFilesByExtension(path, extension)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(all)
	return all, nil
}
