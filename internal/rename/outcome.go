package rename

import (
	"fmt"
	"path/filepath"
)

// Status is the per-file result of a batch operation.
type Status string

const (
	StatusRenamed Status = "renamed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusPlanned Status = "planned" // preview only
)

// ReasonSourceMissing is the Skipped reason for a source that vanished
// between listing and renaming.
const ReasonSourceMissing = "source does not exist"

type Outcome struct {
	Source string
	Target string
	Status Status
	Reason string
}

// Warning renders a non-renamed outcome for the summary, or "" when the
// outcome needs no warning.
func (o Outcome) Warning() string {
	name := filepath.Base(o.Source)
	switch o.Status {
	case StatusSkipped:
		return fmt.Sprintf("File does not exist: %s", name)
	case StatusFailed:
		return fmt.Sprintf("Rename error %s: %s", name, o.Reason)
	}
	return ""
}

// Result aggregates the outcomes of one batch, in input order.
type Result struct {
	Outcomes  []Outcome
	Succeeded int
}

// Warnings lists the warning line for every skipped or failed outcome, in
// input order.
func (r Result) Warnings() []string {
	var out []string
	for _, o := range r.Outcomes {
		if w := o.Warning(); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Count returns how many outcomes have status st.
func (r Result) Count(st Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == st {
			n++
		}
	}
	return n
}

func (r *Result) add(o Outcome) {
	if o.Status == StatusRenamed {
		r.Succeeded++
	}
	r.Outcomes = append(r.Outcomes, o)
}
