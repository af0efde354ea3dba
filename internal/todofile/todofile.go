// Package todofile loads, backs up and saves todo.txt files on disk.
package todofile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hay-kot/todoadd/internal/core/todotxt"
)

const (
	// DefaultBackupSuffix is appended to the todo file path for backups.
	DefaultBackupSuffix = ".bak"
	// DefaultDoneFile is the completed-task file next to the todo file.
	DefaultDoneFile = "done.txt"
)

// Load parses the todo file at path.
func Load(path string) (todotxt.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	list, err := todotxt.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list, nil
}

// DonePath returns the path of the done file that sits next to todoPath.
func DonePath(todoPath, doneFile string) string {
	if doneFile == "" {
		doneFile = DefaultDoneFile
	}
	return filepath.Join(filepath.Dir(todoPath), doneFile)
}

// LoadDone parses the done file at path. A missing file is not an error:
// it yields an empty list and found=false. A malformed line is returned as
// a *todotxt.LineError so callers can treat it as non-fatal.
func LoadDone(path string) (list todotxt.List, found bool, err error) {
	list, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return list, true, nil
}

// Backup copies path byte for byte to path+suffix, overwriting any existing
// backup, and returns the backup path. The backup keeps the source's
// permission bits.
func Backup(path, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	backupPath := path + suffix

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat todo file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read todo file: %w", err)
	}

	if err := os.WriteFile(backupPath, content, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	return backupPath, nil
}

// Save overwrites path with list. The serializer does not terminate the
// last line, so a newline is written separately afterwards to keep the
// file one-record-per-line for the next append.
func Save(path string, list todotxt.List) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := todotxt.Write(f, list); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}

	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("write trailing newline: %w", err)
	}

	return nil
}
