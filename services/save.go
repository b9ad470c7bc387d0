package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"syscall"
)

// DefaultOutputDir is ~/Desktop/Alder_Quotes, falling back to a relative
// Alder_Quotes folder when the home directory is unknown.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Alder_Quotes"
	}
	return filepath.Join(home, "Desktop", "Alder_Quotes")
}

// SaveProposal creates dir if needed and writes content to dir/name. A file
// held open by another program surfaces as ErrFileLocked.
func SaveProposal(dir, name string, content []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if isFileLocked(err) {
			return "", fmt.Errorf("%w: %s", ErrFileLocked, path)
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// isFileLocked reports whether an open failed because another program holds
// the file: a permission error, or one of the platform's lock errnos.
func isFileLocked(err error) bool {
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	var errno syscall.Errno
	return errors.As(err, &errno) && slices.Contains(lockErrnos, errno)
}
