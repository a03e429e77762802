// Package rename implements single and batch renaming of files in place.
//
// A batch renames an ordered list of sources to "{base}_{n}{ext}". Each file
// is attempted exactly once; a failure is recorded for that file and the
// batch moves on.
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultStart is the first index callers use when the user gave none.
const DefaultStart = 1

var (
	ErrEmptyBase     = errors.New("base name is required")
	ErrInvalidBase   = errors.New("invalid base name")
	ErrInvalidStart  = errors.New("start index must not be negative")
	ErrSourceMissing = errors.New(ReasonSourceMissing)
	ErrTargetExists  = errors.New("target already exists")
)

// Job describes one batch rename. Sources are processed in the given order;
// sorting and deduplication are up to the caller (see SortedUnique).
type Job struct {
	Sources []string
	Base    string
	Start   int // first number, used as given; see DefaultStart
}

func (j Job) validate() (string, error) {
	base := strings.TrimSpace(j.Base)
	if base == "" {
		return "", ErrEmptyBase
	}
	if reason := InvalidNameReason(base); reason != "" {
		return "", fmt.Errorf("%w %q: %s", ErrInvalidBase, base, reason)
	}
	if j.Start < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidStart, j.Start)
	}
	return base, nil
}

// Pairs returns the planned target for every source, in order.
func (j Job) Pairs() ([][2]string, error) {
	base, err := j.validate()
	if err != nil {
		return nil, err
	}
	out := make([][2]string, 0, len(j.Sources))
	for i, src := range j.Sources {
		target := filepath.Join(filepath.Dir(src), TargetName(base, j.Start+i, src))
		out = append(out, [2]string{src, target})
	}
	return out, nil
}

// Run renames every source of job in order and reports one outcome per
// source. The returned error is only for an invalid job; per-file problems
// are outcomes.
//
// Renames are applied as they go. There is no rollback: when a later file
// fails, earlier files keep their new names. Files that vanish or change
// between listing and Run show up as skipped or failed.
func Run(job Job) (Result, error) {
	pairs, err := job.Pairs()
	if err != nil {
		return Result{}, err
	}
	res := Result{Outcomes: make([]Outcome, 0, len(pairs))}
	for _, p := range pairs {
		res.add(renameOne(p[0], p[1]))
	}
	return res, nil
}

func renameOne(src, target string) Outcome {
	o := Outcome{Source: src, Target: target}
	srcInfo, err := sourceInfo(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.Status = StatusSkipped
			o.Reason = ReasonSourceMissing
			return o
		}
		o.Status = StatusFailed
		o.Reason = err.Error()
		return o
	}
	if err := checkTarget(src, srcInfo, target); err != nil {
		o.Status = StatusFailed
		o.Reason = err.Error()
		return o
	}
	if err := os.Rename(src, target); err != nil {
		o.Status = StatusFailed
		o.Reason = err.Error()
		return o
	}
	o.Status = StatusRenamed
	return o
}

// sourceInfo returns the Lstat info of src. Symlinks are followed for the
// existence check, so a dangling link counts as missing.
func sourceInfo(src string) (fs.FileInfo, error) {
	if _, err := os.Stat(src); err != nil {
		return nil, err
	}
	return os.Lstat(src)
}

// checkTarget refuses to overwrite an existing file. os.Rename replaces the
// target silently on POSIX systems. A target that is the source itself (same
// name, or a case-only change on a case-insensitive volume) is allowed.
func checkTarget(src string, srcInfo fs.FileInfo, target string) error {
	tgtInfo, err := os.Lstat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if os.SameFile(srcInfo, tgtInfo) {
		return nil
	}
	return &os.LinkError{Op: "rename", Old: src, New: target, Err: fs.ErrExist}
}

// Preview reports what Run would do without touching the filesystem.
// Sources that would be renamed get StatusPlanned. Two sources mapping to
// the same target are both reported as failed.
func Preview(job Job) ([]Outcome, error) {
	pairs, err := job.Pairs()
	if err != nil {
		return nil, err
	}
	claimed := make(map[string]int, len(pairs))
	for _, p := range pairs {
		claimed[p[1]]++
	}

	out := make([]Outcome, 0, len(pairs))
	for i, p := range pairs {
		o := Outcome{Source: p[0], Target: p[1], Status: StatusPlanned}
		info, err := sourceInfo(p[0])
		switch {
		case errors.Is(err, fs.ErrNotExist):
			o.Status = StatusSkipped
			o.Reason = ReasonSourceMissing
		case err != nil:
			o.Status = StatusFailed
			o.Reason = err.Error()
		case claimed[p[1]] > 1:
			o.Status = StatusFailed
			o.Reason = "conflict: duplicate target name"
		default:
			if err := checkTarget(p[0], info, p[1]); err != nil && !freedBefore(pairs[:i], out, p[1]) {
				o.Status = StatusFailed
				o.Reason = err.Error()
			}
		}
		out = append(out, o)
	}
	return out, nil
}

// freedBefore reports whether target is moved away by one of the earlier
// pairs, which only happens when that pair is itself planned.
func freedBefore(earlier [][2]string, outcomes []Outcome, target string) bool {
	for j, q := range earlier {
		if q[0] == target {
			return outcomes[j].Status == StatusPlanned
		}
	}
	return false
}
