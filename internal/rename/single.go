package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Single renames the file or folder at path to newName in the same
// directory and returns the new path. An unchanged name is a no-op.
func Single(path, newName string) (string, error) {
	newName = strings.TrimSpace(newName)
	oldName := filepath.Base(path)
	if newName == oldName {
		return path, nil
	}
	if reason := InvalidNameReason(newName); reason != "" {
		return "", fmt.Errorf("rename %s to %q: %s", oldName, newName, reason)
	}
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("rename %s: %w", oldName, ErrSourceMissing)
		}
		return "", err
	}
	target := filepath.Join(filepath.Dir(path), newName)
	if err := checkTarget(path, info, target); err != nil {
		return "", fmt.Errorf("rename %s to %s: %w", oldName, newName, ErrTargetExists)
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}
