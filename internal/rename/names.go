package rename

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// InvalidNameReason returns why name cannot be used as a file name, or ""
// when it is acceptable.
func InvalidNameReason(name string) string {
	trim := strings.TrimSpace(name)
	if trim == "" {
		return "empty name"
	}
	if trim == "." || trim == ".." {
		return "reserved filename"
	}
	if strings.ContainsAny(trim, `<>:"/\|?*`) {
		return "invalid characters"
	}
	base := strings.TrimSuffix(trim, filepath.Ext(trim))
	if reservedNames[strings.ToUpper(base)] {
		return "reserved filename"
	}
	return ""
}

// TargetName builds "{base}_{n}{ext}" where ext is the extension of source
// including the dot, or empty.
func TargetName(base string, n int, source string) string {
	return base + "_" + strconv.Itoa(n) + Extension(source)
}

// Extension returns the suffix of the last element of path, including the
// dot. Leading dots do not start an extension: ".bashrc" has none.
func Extension(path string) string {
	name := strings.TrimLeft(filepath.Base(path), ".")
	return filepath.Ext(name)
}

// SortedUnique returns paths cleaned, deduplicated and sorted
// lexicographically. Batch numbering follows this order.
func SortedUnique(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
