package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"FileCardManager/internal/rename"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"one byte", 1, "1 B"},
		{"just under 1K", 1023, "1023 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"exactly 1 MiB", 1024 * 1024, "1.0 MiB"},
		{"exactly 1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"2.5 GiB", 2684354560, "2.5 GiB"},
		{"exactly 1 TiB", 1024 * 1024 * 1024 * 1024, "1.0 TiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatModTime(t *testing.T) {
	assert.Equal(t, "-", FormatModTime(time.Time{}))
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	assert.Equal(t, "2024-03-09 14:05:07", FormatModTime(ts))
}

func TestTagRows(t *testing.T) {
	assert.Nil(t, TagRows(nil, 3))
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d"}}, TagRows([]string{"a", "b", "c", "d"}, 3))
	assert.Equal(t, [][]string{{"a", "b", "c"}}, TagRows([]string{"a", "b", "c"}, 0))
}

func TestBatchSummary(t *testing.T) {
	res := rename.Result{
		Succeeded: 1,
		Outcomes: []rename.Outcome{
			{Source: "/r/a.txt", Target: "/r/x_1.txt", Status: rename.StatusRenamed},
			{Source: "/r/b.txt", Target: "/r/x_2.txt", Status: rename.StatusSkipped, Reason: rename.ReasonSourceMissing},
		},
	}
	got := BatchSummary(res)
	assert.Equal(t, "Renamed successfully: 1 file(s)\n\nWarnings:\nFile does not exist: b.txt", got)

	clean := BatchSummary(rename.Result{Succeeded: 2})
	assert.Equal(t, "Renamed successfully: 2 file(s)", clean)
}

func TestPreviewSummary(t *testing.T) {
	outcomes := []rename.Outcome{
		{Source: "/r/a.txt", Target: "/r/x_1.txt", Status: rename.StatusPlanned},
		{Source: "/r/b.txt", Target: "/r/x_2.txt", Status: rename.StatusFailed, Reason: "exists"},
		{Source: "/r/c.txt", Target: "/r/x_3.txt", Status: rename.StatusPlanned},
	}
	got := PreviewSummary(outcomes, 2)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "Will rename: 2 of 3 file(s)", lines[0])
	assert.Equal(t, " - a.txt → x_1.txt", lines[2])
	assert.Equal(t, " - b.txt → x_2.txt  ⚠ failed: exists", lines[3])
	assert.Equal(t, " ... and 1 more", lines[4])
}
