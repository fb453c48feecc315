package flatstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	filePermissions = 0644
	dirPermissions  = 0755
)

// openOrCreate opens path read-write, creating it and its directory when
// missing. The bool reports whether the file was created.
func openOrCreate(path string) (*os.File, bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, false, &OpenError{Op: "mkdir", Path: path, Cause: err}
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, &OpenError{Op: "open", Path: path, Cause: err}
	}

	f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePermissions)
	if err != nil {
		return nil, false, &OpenError{Op: "open", Path: path, Cause: err}
	}
	return f, true, nil
}

// replaceFile atomically replaces path with data and returns a fresh
// read-write handle on it. current, if non-nil, is closed before the rename
// and reopened if the rename fails, so the caller always holds a usable handle
// on success and its old handle on failure.
func replaceFile(path string, data []byte, current *os.File) (*os.File, error) {
	tmpPath := path + ".tmp"

	tmp, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return current, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return current, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return current, fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return current, fmt.Errorf("failed to close temp file: %w", err)
	}

	var closeErr error
	if current != nil {
		closeErr = current.Close()
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		reopened, reopenErr := os.OpenFile(path, os.O_RDWR, 0)
		if reopenErr != nil {
			return nil, fmt.Errorf("failed to rename temp file: %w (reopen error: %v)", err, reopenErr)
		}
		return reopened, fmt.Errorf("failed to rename temp file: %w (close error: %v)", err, closeErr)
	}
	syncDir(filepath.Dir(path))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen store: %w", err)
	}
	return f, nil
}

// syncDir makes a rename durable where the platform allows fsync on a
// directory. Failure only weakens durability, so it is ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	d.Sync()
	d.Close()
}

// Reset truncates the store file at path to zero bytes, which loads as an
// empty store. It is the recovery hook for callers that choose to rebuild a
// cache after a TruncatedStoreError or FormatError. The store itself never
// resets a file.
func Reset(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return &OpenError{Op: "mkdir", Path: path, Cause: err}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return &OpenError{Op: "open", Path: path, Cause: err}
	}
	return f.Close()
}
