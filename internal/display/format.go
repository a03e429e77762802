// Package display formats sizes, dates, tags and batch summaries for cards
// and message dialogs.
package display

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"FileCardManager/internal/rename"
)

// TimeLayout is the modification-date format shown on cards.
const TimeLayout = "2006-01-02 15:04:05"

// TagsPerRow is how many folder tags a card shows per line.
const TagsPerRow = 3

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatModTime renders t in local time, or "-" for the zero time.
func FormatModTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(TimeLayout)
}

// TagRows splits tags into rows of at most perRow entries.
func TagRows(tags []string, perRow int) [][]string {
	if perRow <= 0 {
		perRow = TagsPerRow
	}
	var rows [][]string
	for i := 0; i < len(tags); i += perRow {
		end := i + perRow
		if end > len(tags) {
			end = len(tags)
		}
		rows = append(rows, tags[i:end])
	}
	return rows
}

// BatchSummary is the message shown after a batch rename or undo.
func BatchSummary(res rename.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Renamed successfully: %d file(s)", res.Succeeded)
	if warnings := res.Warnings(); len(warnings) > 0 {
		b.WriteString("\n\nWarnings:\n")
		b.WriteString(strings.Join(warnings, "\n"))
	}
	return b.String()
}

// PreviewSummary lists what a batch would do, one line per source, capped
// at limit lines.
func PreviewSummary(outcomes []rename.Outcome, limit int) string {
	var b strings.Builder
	planned := 0
	for _, o := range outcomes {
		if o.Status == rename.StatusPlanned {
			planned++
		}
	}
	fmt.Fprintf(&b, "Will rename: %d of %d file(s)\n\n", planned, len(outcomes))
	for i, o := range outcomes {
		if limit > 0 && i == limit {
			fmt.Fprintf(&b, " ... and %d more\n", len(outcomes)-limit)
			break
		}
		line := fmt.Sprintf(" - %s → %s", filepath.Base(o.Source), filepath.Base(o.Target))
		if o.Status != rename.StatusPlanned {
			line += fmt.Sprintf("  ⚠ %s: %s", o.Status, o.Reason)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
