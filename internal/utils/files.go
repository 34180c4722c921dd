package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Standard default permissions
// File: u=rw, g=rw, o=r
const PermFile os.FileMode = 0664

// Dir:  u=rwx, g=rwx, o=rx (Requires +x to traverse)
const PermDir os.FileMode = 0775

// Exec: u=rwx, g=rwx, o=rx (batch scripts)
const PermExec os.FileMode = 0775

// SafeName converts a job or bundle name to a filesystem-safe string by replacing "/" with "--".
func SafeName(name string) string {
	return strings.ReplaceAll(name, "/", "--")
}

// FileExists checks if a file exists and is not a directory.
func FileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a path exists and is a directory.
func DirExists(fs afero.Fs, path string) bool {
	ok, err := afero.DirExists(fs, path)
	return err == nil && ok
}

// EnsureDir checks if a directory exists, and creates it if it doesn't.
func EnsureDir(fs afero.Fs, path string) error {
	if DirExists(fs, path) {
		return nil
	}
	if err := fs.MkdirAll(path, PermDir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// WriteFileExclusive writes data to path, refusing to replace an existing file unless overwrite is set.
// Returns os.ErrExist (wrapped) when the file exists and overwrite is false.
func WriteFileExclusive(fs afero.Fs, path string, data []byte, perm os.FileMode, overwrite bool) error {
	if err := EnsureDir(fs, filepath.Dir(path)); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := fs.OpenFile(path, flags, perm)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
