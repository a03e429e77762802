package listing

import (
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchMode selects how Search matches a query against entry names.
type SearchMode string

const (
	ModeContains   SearchMode = "contains"
	ModeStartsWith SearchMode = "starts with"
	ModeEndsWith   SearchMode = "ends with"
	ModeExtension  SearchMode = "extension"
	ModeFuzzy      SearchMode = "fuzzy"
)

// Modes lists the search modes in display order.
var Modes = []SearchMode{ModeContains, ModeStartsWith, ModeEndsWith, ModeExtension, ModeFuzzy}

// Search filters entries by name. An empty query keeps every entry in its
// original order. Fuzzy results are ranked best match first; every other
// mode keeps the input order.
func Search(entries []Entry, query string, mode SearchMode, caseSensitive bool) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	if mode == ModeFuzzy {
		return fuzzySearch(entries, query)
	}

	q := query
	if !caseSensitive {
		q = strings.ToLower(q)
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, q, mode, caseSensitive) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Entry, q string, mode SearchMode, caseSensitive bool) bool {
	name := e.Name
	if !caseSensitive {
		name = strings.ToLower(name)
	}
	switch mode {
	case ModeStartsWith:
		return strings.HasPrefix(name, q)
	case ModeEndsWith:
		return strings.HasSuffix(name, q)
	case ModeExtension:
		if e.IsDir {
			return false
		}
		if !strings.HasPrefix(q, ".") {
			q = "." + q
		}
		return filepath.Ext(name) == q
	default:
		return strings.Contains(name, q)
	}
}

type nameSource []Entry

func (n nameSource) String(i int) string { return n[i].Name }
func (n nameSource) Len() int            { return len(n) }

func fuzzySearch(entries []Entry, query string) []Entry {
	found := fuzzy.FindFrom(query, nameSource(entries))
	out := make([]Entry, 0, len(found))
	for _, m := range found {
		out = append(out, entries[m.Index])
	}
	return out
}

// FindPaths fuzzy-matches query against the given paths and returns up to
// limit matches, best first. A limit of zero or less means no limit.
func FindPaths(query string, paths []string, limit int) []string {
	found := fuzzy.Find(query, paths)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	out := make([]string, 0, len(found))
	for _, m := range found {
		out = append(out, m.Str)
	}
	return out
}
