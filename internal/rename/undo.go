package rename

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

var undoHeader = []string{"old_path", "new_path", "status", "reason"}

// Record is one row of an undo log.
type Record struct {
	OldPath string
	NewPath string
	Status  Status
	Reason  string
}

// WriteUndoCSV writes one row per outcome so a batch can be reverted later.
func WriteUndoCSV(w io.Writer, outcomes []Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(undoHeader); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := cw.Write([]string{o.Source, o.Target, string(o.Status), o.Reason}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveUndoCSV writes the undo log to path, replacing any previous file.
func SaveUndoCSV(path string, outcomes []Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteUndoCSV(f, outcomes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadUndoCSV parses a log written by WriteUndoCSV.
func ReadUndoCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(undoHeader)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read undo log: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("read undo log: empty file")
	}
	for i, col := range undoHeader {
		if rows[0][i] != col {
			return nil, fmt.Errorf("read undo log: unexpected header %q", rows[0])
		}
	}
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, Record{OldPath: row[0], NewPath: row[1], Status: Status(row[2]), Reason: row[3]})
	}
	return out, nil
}

// LoadUndoCSV reads the undo log at path.
func LoadUndoCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadUndoCSV(f)
}

// Undo moves every renamed record back to its old path, newest first, with
// the same per-file semantics as Run.
func Undo(records []Record) Result {
	var res Result
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if rec.Status != StatusRenamed {
			continue
		}
		res.add(renameOne(rec.NewPath, rec.OldPath))
	}
	return res
}
