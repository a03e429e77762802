// Package listing reads directories for the card view.
package listing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"

	"FileCardManager/internal/rename"
	"FileCardManager/internal/scope"
)

// Entry is one file or folder shown as a card.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64 // file size; zero for folders until Size is asked for
	ModTime time.Time
	Tags    []string
}

// List returns the entries of dir, folders first, then files, each in
// natural order. dir must be inside sc.
func List(sc scope.Scope, dir string) ([]Entry, error) {
	if !sc.Contains(dir) {
		return nil, fmt.Errorf("list %s: %w", dir, scope.ErrScopeViolation)
	}
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", sc.RelativeDisplay(dir), err)
	}
	var dirs, files []Entry
	for _, de := range des {
		name := de.Name()
		if strings.TrimSpace(name) == "" {
			continue
		}
		e, err := entry(sc, filepath.Join(dir, name), de)
		if err != nil {
			// Vanished between ReadDir and Info; the next refresh drops it.
			continue
		}
		if e.IsDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sortEntries(dirs)
	sortEntries(files)
	return append(dirs, files...), nil
}

// Walk returns every regular file below dir, sorted by path.
func Walk(sc scope.Scope, dir string) ([]Entry, error) {
	if !sc.Contains(dir) {
		return nil, fmt.Errorf("walk %s: %w", dir, scope.ErrScopeViolation)
	}
	var out []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != dir && errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		e, err := entry(sc, path, d)
		if err != nil {
			return nil
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", sc.RelativeDisplay(dir), err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func entry(sc scope.Scope, path string, de fs.DirEntry) (Entry, error) {
	info, err := de.Info()
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Name:    de.Name(),
		Path:    path,
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Tags:    sc.Tags(path),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e, nil
}

// Files returns the paths of the non-folder entries.
func Files(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		if !e.IsDir {
			out = append(out, e.Path)
		}
	}
	return out
}

// Size returns the size of a file, or the total size of the regular files
// below a directory.
func Size(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	var total int64
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total += fi.Size()
		return nil
	})
	return total, err
}

// MakeDir creates dir/name. An existing folder of that name is not an error.
func MakeDir(sc scope.Scope, dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if reason := rename.InvalidNameReason(name); reason != "" {
		return "", fmt.Errorf("create folder %q: %s", name, reason)
	}
	target := filepath.Join(dir, name)
	if !sc.Contains(target) {
		return "", fmt.Errorf("create folder %s: %w", target, scope.ErrScopeViolation)
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", name, err)
	}
	return target, nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return NaturalLess(entries[i].Name, entries[j].Name)
	})
}

// NaturalLess orders names case-insensitively with digit runs compared as
// numbers, so "file2" sorts before "file10". Names equal up to case fall
// back to a byte comparison so the order is total.
func NaturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return natural.Less(la, lb)
	}
	return a < b
}
