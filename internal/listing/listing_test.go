package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FileCardManager/internal/scope"
)

func fixture(t *testing.T) scope.Scope {
	t.Helper()
	sc, err := scope.New(filepath.Join(t.TempDir(), "main"), "")
	require.NoError(t, err)
	root := sc.Root()
	for _, d := range []string{"Photos", "docs", filepath.Join("docs", "old")} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
	files := map[string]string{
		"file10.txt":                          "0123456789",
		"file2.txt":                           "01",
		"Readme.md":                           "abc",
		filepath.Join("docs", "a.pdf"):        "12345",
		filepath.Join("docs", "old", "b.pdf"): "1",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(body), 0644))
	}
	return sc
}

func entryNames(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestList_Order(t *testing.T) {
	sc := fixture(t)
	entries, err := List(sc, sc.Current())
	require.NoError(t, err)

	assert.Equal(t, []string{"docs", "Photos", "file2.txt", "file10.txt", "Readme.md"}, entryNames(entries))
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, int64(2), entries[2].Size)
	assert.Empty(t, entries[2].Tags)
	assert.False(t, entries[2].ModTime.IsZero())
}

func TestList_Tags(t *testing.T) {
	sc := fixture(t)
	docs, err := sc.Enter("docs")
	require.NoError(t, err)
	entries, err := List(docs, docs.Current())
	require.NoError(t, err)
	require.Equal(t, []string{"old", "a.pdf"}, entryNames(entries))
	assert.Equal(t, []string{"docs"}, entries[1].Tags)
}

func TestList_OutsideRoot(t *testing.T) {
	sc := fixture(t)
	_, err := List(sc, filepath.Dir(sc.Root()))
	require.ErrorIs(t, err, scope.ErrScopeViolation)
}

func TestWalk(t *testing.T) {
	sc := fixture(t)
	entries, err := Walk(sc, sc.Root())
	require.NoError(t, err)

	var rel []string
	for _, e := range entries {
		rel = append(rel, sc.RelativeDisplay(e.Path))
	}
	assert.Equal(t, []string{
		"Readme.md",
		filepath.Join("docs", "a.pdf"),
		filepath.Join("docs", "old", "b.pdf"),
		"file10.txt",
		"file2.txt",
	}, rel)
	assert.Equal(t, []string{"docs", "old"}, entries[2].Tags)
}

func TestSize(t *testing.T) {
	sc := fixture(t)
	n, err := Size(filepath.Join(sc.Root(), "file10.txt"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	n, err = Size(filepath.Join(sc.Root(), "docs"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	n, err = Size(sc.Root())
	require.NoError(t, err)
	assert.Equal(t, int64(21), n)

	_, err = Size(filepath.Join(sc.Root(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMakeDir(t *testing.T) {
	sc := fixture(t)
	got, err := MakeDir(sc, sc.Current(), " New Folder ")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sc.Root(), "New Folder"), got)
	assert.DirExists(t, got)

	_, err = MakeDir(sc, sc.Current(), "New Folder")
	require.NoError(t, err, "existing folder is fine")

	_, err = MakeDir(sc, sc.Current(), "bad:name")
	require.Error(t, err)

	_, err = MakeDir(sc, sc.Current(), "")
	require.Error(t, err)
}

func TestFiles(t *testing.T) {
	sc := fixture(t)
	entries, err := List(sc, sc.Current())
	require.NoError(t, err)
	files := Files(entries)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(sc.Root(), "file2.txt"), files[0])
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"file2", "file10", true},
		{"file10", "file2", false},
		{"a", "B", true},
		{"B", "a", false},
		{"IMG_9.jpg", "img_10.jpg", true},
		{"File", "file", true},
		{"file", "File", false},
		{"abc", "abcd", true},
		{"same", "same", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, NaturalLess(tt.a, tt.b))
		})
	}
}
