package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FileCardManager/internal/rename"
	"FileCardManager/internal/scope"
)

func newState(t *testing.T) State {
	t.Helper()
	sc, err := scope.New(filepath.Join(t.TempDir(), "main"), "")
	require.NoError(t, err)
	root := sc.Root()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	for _, name := range []string{"b.png", "a.txt", filepath.Join("docs", "report.pdf")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("data"), 0644))
	}
	return State{Scope: sc, Start: rename.DefaultStart}
}

func TestExec_Quoting(t *testing.T) {
	st := newState(t)
	root := st.Scope.Root()
	require.NoError(t, os.WriteFile(filepath.Join(root, "my file.txt"), []byte("data"), 0644))

	tests := []struct {
		line string
		from string
		to   string
	}{
		{`rename "my file.txt" 'your file.txt'`, "my file.txt", "your file.txt"},
		{`rename your\ file.txt "it's.txt"`, "your file.txt", "it's.txt"},
		{"  rename\t'it'\\''s.txt'  plain.txt\t", "it's.txt", "plain.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			resp := Exec(st, tt.line)
			require.Len(t, resp.Lines, 1)
			assert.Equal(t, tt.from+" → "+tt.to, resp.Lines[0])
			assert.FileExists(t, filepath.Join(root, tt.to))
		})
	}

	resp := Exec(st, `cd "open`)
	require.Len(t, resp.Lines, 1)
	assert.True(t, strings.HasPrefix(resp.Lines[0], "error:"))
	assert.False(t, resp.Refresh)

	resp = Exec(st, `mkdir ""`)
	require.Len(t, resp.Lines, 1)
	assert.True(t, strings.HasPrefix(resp.Lines[0], "error:"))
}

func TestExec_Empty(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "   ")
	assert.Empty(t, resp.Lines)
	assert.Equal(t, st, resp.State)
}

func TestExec_Unknown(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "explode now")
	require.Len(t, resp.Lines, 1)
	assert.True(t, strings.HasPrefix(resp.Lines[0], "error: unknown command"))
}

func TestExec_Help(t *testing.T) {
	resp := Exec(newState(t), "help")
	assert.Equal(t, "Commands:", resp.Lines[0])
	assert.Len(t, resp.Lines, len(commands)+1)
}

func TestExec_Navigation(t *testing.T) {
	st := newState(t)

	resp := Exec(st, "pwd")
	assert.Equal(t, []string{"main"}, resp.Lines)

	resp = Exec(st, "cd docs")
	assert.True(t, resp.Refresh)
	assert.Equal(t, []string{"docs"}, resp.Lines)
	assert.Equal(t, filepath.Join(st.Scope.Root(), "docs"), resp.State.Scope.Current())
	assert.True(t, st.Scope.AtRoot(), "input state is not modified")

	up := Exec(resp.State, "up")
	assert.True(t, up.State.Scope.AtRoot())

	back := Exec(resp.State, "cd ..")
	assert.True(t, back.State.Scope.AtRoot())

	home := Exec(resp.State, "cd /")
	assert.True(t, home.State.Scope.AtRoot())
}

func TestExec_NavigationErrors(t *testing.T) {
	st := newState(t)

	resp := Exec(st, "up")
	assert.Equal(t, []string{"error: already at the root folder"}, resp.Lines)
	assert.True(t, resp.State.Scope.AtRoot())

	resp = Exec(st, "cd a.txt")
	require.Len(t, resp.Lines, 1)
	assert.Contains(t, resp.Lines[0], "not a directory")
	assert.Equal(t, st.Scope.Current(), resp.State.Scope.Current())
	assert.False(t, resp.Refresh)

	resp = Exec(st, "cd ../..")
	assert.Equal(t, []string{"error: cannot leave the root folder"}, resp.Lines)

	resp = Exec(st, "cd")
	assert.Equal(t, []string{"error: usage: cd <folder>|..|/"}, resp.Lines)
}

func TestExec_Ls(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "ls")
	require.Len(t, resp.Lines, 3)
	assert.True(t, strings.HasPrefix(resp.Lines[0], "docs/"))
	assert.True(t, strings.HasPrefix(resp.Lines[1], "a.txt"))
	assert.Contains(t, resp.Lines[1], "4 B")
	assert.True(t, strings.HasPrefix(resp.Lines[2], "b.png"))

	resp = Exec(st, "ls -r")
	require.Len(t, resp.Lines, 3)
	assert.True(t, strings.HasPrefix(resp.Lines[2], filepath.Join("docs", "report.pdf")))

	resp = Exec(st, "ls -x")
	assert.Equal(t, []string{"error: usage: ls [-r]"}, resp.Lines)
}

func TestExec_LsEmpty(t *testing.T) {
	st := newState(t)
	require.NoError(t, os.MkdirAll(filepath.Join(st.Scope.Root(), "empty"), 0755))
	resp := Exec(Exec(st, "cd empty").State, "ls")
	assert.Equal(t, []string{"(empty)"}, resp.Lines)
}

func TestExec_Mkdir(t *testing.T) {
	st := newState(t)
	resp := Exec(st, `mkdir "New Folder"`)
	assert.True(t, resp.Refresh)
	assert.Equal(t, []string{"created New Folder"}, resp.Lines)
	assert.DirExists(t, filepath.Join(st.Scope.Root(), "New Folder"))

	resp = Exec(st, "mkdir bad:name")
	assert.True(t, strings.HasPrefix(resp.Lines[0], "error:"))
	assert.False(t, resp.Refresh)
}

func TestExec_Rename(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "rename a.txt c.txt")
	assert.Equal(t, []string{"a.txt → c.txt"}, resp.Lines)
	assert.True(t, resp.Refresh)
	assert.FileExists(t, filepath.Join(st.Scope.Root(), "c.txt"))

	resp = Exec(st, "rename c.txt b.png")
	assert.Contains(t, resp.Lines[0], "target already exists")

	resp = Exec(st, "rename docs/report.pdf x.pdf")
	assert.Equal(t, []string{"error: rename works on names in the current folder"}, resp.Lines)
}

func TestExec_Batch(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "batch photo *")
	require.NotNil(t, resp.Batch)
	assert.Equal(t, 2, resp.Batch.Succeeded)
	assert.Equal(t, []string{"Renamed successfully: 2 file(s)"}, resp.Lines)
	assert.True(t, resp.Refresh)

	root := st.Scope.Root()
	assert.FileExists(t, filepath.Join(root, "photo_1.txt"))
	assert.FileExists(t, filepath.Join(root, "photo_2.png"))
	assert.DirExists(t, filepath.Join(root, "docs"), "folders are not renamed by *")
}

func TestExec_BatchStartAndMissing(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "batch x -s 5 b.png gone.txt a.txt")
	require.NotNil(t, resp.Batch)
	assert.Equal(t, 2, resp.Batch.Succeeded)

	root := st.Scope.Root()
	// Sorted: a.txt, b.png, gone.txt.
	assert.FileExists(t, filepath.Join(root, "x_5.txt"))
	assert.FileExists(t, filepath.Join(root, "x_6.png"))
	assert.Contains(t, resp.Lines, "File does not exist: gone.txt")
}

func TestExec_BatchDefaultStartFromState(t *testing.T) {
	st := newState(t)
	st.Start = 10
	resp := Exec(st, "batch x a.txt")
	require.NotNil(t, resp.Batch)
	assert.FileExists(t, filepath.Join(st.Scope.Root(), "x_10.txt"))
}

func TestExec_BatchZeroStart(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "batch x -s 0 a.txt b.png")
	require.NotNil(t, resp.Batch)
	assert.FileExists(t, filepath.Join(st.Scope.Root(), "x_0.txt"))
	assert.FileExists(t, filepath.Join(st.Scope.Root(), "x_1.png"))
}

func TestExec_BatchPreview(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "batch x -n *")
	assert.Nil(t, resp.Batch)
	assert.False(t, resp.Refresh)
	assert.Equal(t, "Will rename: 2 of 2 file(s)", resp.Lines[0])
	assert.FileExists(t, filepath.Join(st.Scope.Root(), "a.txt"))
}

func TestExec_BatchErrors(t *testing.T) {
	st := newState(t)
	tests := []struct {
		line string
		want string
	}{
		{"batch", "error: usage:"},
		{"batch x", "error: usage:"},
		{"batch x -s", "error: usage:"},
		{"batch x -s abc a.txt", `error: invalid start index "abc"`},
		{`batch "" a.txt`, "error: base name is required"},
		{"batch x ../outside.txt", "error: cannot leave the root folder"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			resp := Exec(st, tt.line)
			require.Len(t, resp.Lines, 1)
			assert.True(t, strings.HasPrefix(resp.Lines[0], tt.want), resp.Lines[0])
			assert.Nil(t, resp.Batch)
		})
	}
}

func TestExec_Size(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "size a.txt")
	assert.Equal(t, []string{"a.txt: 4 B"}, resp.Lines)

	resp = Exec(st, "size")
	assert.Equal(t, []string{"main: 12 B"}, resp.Lines)

	resp = Exec(st, "size missing")
	assert.True(t, strings.HasPrefix(resp.Lines[0], "error:"))
}

func TestExec_Find(t *testing.T) {
	st := newState(t)
	resp := Exec(st, "find rep")
	assert.Equal(t, []string{filepath.Join("docs", "report.pdf")}, resp.Lines)

	resp = Exec(st, "find zzz")
	assert.Equal(t, []string{"no matches"}, resp.Lines)
}

func TestExec_Clear(t *testing.T) {
	resp := Exec(newState(t), "clear")
	assert.True(t, resp.Clear)
}
