package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to a file, creating directories as needed. perm is
// added to the file's existing permission bits, never removing any.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}

	return AddPermissions(path, perm)
}

// AddPermissions sets the permission bits of perm on path in addition to
// the ones it already has.
func AddPermissions(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode|perm == mode {
		return nil
	}
	if err := os.Chmod(path, mode|perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
