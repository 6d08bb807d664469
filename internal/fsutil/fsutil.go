// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension. Results are returned sorted so that
// callers enumerate files in a stable order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// MakeExecutable promotes the read bits of a file's mode to execute bits,
// so that anyone who can read the file can also run it.
func MakeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode()
	mode |= (mode & 0o444) >> 2
	return os.Chmod(path, mode)
}

// BackupExisting moves an existing file out of the way by renaming it to the
// first free numbered sibling (path.1, path.2, ...). It returns the backup
// path, or the empty string when path does not exist.
func BackupExisting(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	for i := 1; ; i++ {
		backup := fmt.Sprintf("%s.%d", path, i)
		if _, err := os.Stat(backup); err != nil {
			if !os.IsNotExist(err) {
				return "", err
			}
			if err := os.Rename(path, backup); err != nil {
				return "", err
			}
			return backup, nil
		}
	}
}
