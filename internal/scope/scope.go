// Package scope confines navigation to a root directory.
//
// A Scope is a value: Enter, Ascend and Jump return a new Scope and leave the
// receiver untouched, so callers hold exactly one current copy and tests can
// assert on the returned state without a window.
package scope

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotADirectory  = errors.New("not a directory")
	ErrAtRoot         = errors.New("already at root")
	ErrScopeViolation = errors.New("path is outside the root")
)

type Scope struct {
	root    string
	current string
	label   string
}

// Crumb is one element of the breadcrumb path bar.
type Crumb struct {
	Label string
	Path  string
}

// New creates root if it is absent and returns a Scope positioned at it.
// An empty label defaults to the base name of root.
func New(root, label string) (Scope, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Scope{}, fmt.Errorf("resolve root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return Scope{}, fmt.Errorf("create root %s: %w", abs, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Scope{}, fmt.Errorf("resolve root %s: %w", abs, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return Scope{}, err
	}
	if !info.IsDir() {
		return Scope{}, fmt.Errorf("root %s: %w", resolved, ErrNotADirectory)
	}
	if strings.TrimSpace(label) == "" {
		label = filepath.Base(resolved)
	}
	return Scope{root: resolved, current: resolved, label: label}, nil
}

func (s Scope) Root() string    { return s.root }
func (s Scope) Current() string { return s.current }
func (s Scope) Label() string   { return s.label }

// AtRoot reports whether current is the root itself.
func (s Scope) AtRoot() bool { return s.current == s.root }

// Contains reports whether path is root or a descendant of it. The check is
// done on cleaned absolute paths with filepath.Rel, so a sibling sharing a
// prefix ("/main2" next to "/main") is not inside.
func (s Scope) Contains(path string) bool {
	return within(s.root, path)
}

func within(root, path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Resolve confines a user supplied name relative to current. The name may
// contain nested components but the result must stay inside root.
func (s Scope) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty name: %w", ErrScopeViolation)
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%s: %w", name, ErrScopeViolation)
	}
	return s.confine(filepath.Join(s.current, name))
}

// confine checks that a cleaned absolute path is inside root, also after
// its symlinks are resolved.
func (s Scope) confine(target string) (string, error) {
	if !within(s.root, target) {
		return "", fmt.Errorf("%s: %w", target, ErrScopeViolation)
	}
	// A symlink inside root may still point outside of it.
	if resolved, err := filepath.EvalSymlinks(target); err == nil && !within(s.root, resolved) {
		return "", fmt.Errorf("%s -> %s: %w", target, resolved, ErrScopeViolation)
	}
	return target, nil
}

// Enter moves into the child directory name. Current is unchanged on error.
func (s Scope) Enter(name string) (Scope, error) {
	target, err := s.Resolve(name)
	if err != nil {
		return s, err
	}
	if err := isDir(target); err != nil {
		return s, err
	}
	next := s
	next.current = target
	return next, nil
}

// Ascend moves to the parent of current. Leaving root is a hard boundary:
// the call fails with ErrAtRoot and never returns a path outside root.
func (s Scope) Ascend() (Scope, error) {
	parent := filepath.Dir(s.current)
	if parent == s.current || !within(s.root, parent) {
		return s, fmt.Errorf("%s: %w", s.RelativeDisplay(s.current), ErrAtRoot)
	}
	next := s
	next.current = parent
	return next, nil
}

// Jump moves to an absolute directory inside root.
func (s Scope) Jump(path string) (Scope, error) {
	path, err := s.confine(filepath.Clean(path))
	if err != nil {
		return s, err
	}
	if err := isDir(path); err != nil {
		return s, err
	}
	next := s
	next.current = path
	return next, nil
}

// Home returns the scope positioned at root.
func (s Scope) Home() Scope {
	next := s
	next.current = s.root
	return next
}

// RelativeDisplay returns path relative to root, or the root label for root
// itself. Paths outside root are returned as given.
func (s Scope) RelativeDisplay(path string) string {
	if !within(s.root, path) {
		return path
	}
	rel, _ := filepath.Rel(s.root, filepath.Clean(path))
	if rel == "." {
		return s.label
	}
	return rel
}

// Display is RelativeDisplay for current.
func (s Scope) Display() string {
	return s.RelativeDisplay(s.current)
}

// Breadcrumbs lists root and every directory down to current.
func (s Scope) Breadcrumbs() []Crumb {
	crumbs := []Crumb{{Label: s.label, Path: s.root}}
	if s.AtRoot() {
		return crumbs
	}
	rel, err := filepath.Rel(s.root, s.current)
	if err != nil {
		return crumbs
	}
	path := s.root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		path = filepath.Join(path, part)
		crumbs = append(crumbs, Crumb{Label: part, Path: path})
	}
	return crumbs
}

// Tags returns the folder components of the directory holding path,
// relative to root. Entries directly in root have no tags.
func (s Scope) Tags(path string) []string {
	dir := filepath.Dir(filepath.Clean(path))
	if !within(s.root, dir) {
		return nil
	}
	rel, err := filepath.Rel(s.root, dir)
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}

func isDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotADirectory)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotADirectory)
	}
	return nil
}
