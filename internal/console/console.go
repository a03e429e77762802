// Package console runs the text commands typed into the console panel.
//
// Exec takes the current State and a command line and returns the new
// State together with the lines to print. It never changes its input, so
// the window keeps a single State and replaces it after every command.
package console

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"FileCardManager/internal/display"
	"FileCardManager/internal/listing"
	"FileCardManager/internal/rename"
	"FileCardManager/internal/scope"
)

// FindLimit caps the number of matches printed by find.
const FindLimit = 20

type State struct {
	Scope scope.Scope
	Start int // first batch index when -s is not given, used as given
}

type Response struct {
	State   State
	Lines   []string
	Refresh bool           // the directory view must be re-read
	Clear   bool           // the console output must be cleared
	Batch   *rename.Result // set after a batch rename
}

type handler func(st State, args []string) (Response, error)

type command struct {
	usage string
	help  string
	run   handler
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":   {"help", "show this help", runHelp},
		"pwd":    {"pwd", "print the current folder", runPwd},
		"ls":     {"ls [-r]", "list the current folder (-r: every file below it)", runLs},
		"cd":     {"cd <folder>|..|/", "enter a folder, go up, or go to the root", runCd},
		"up":     {"up", "go to the parent folder", runUp},
		"mkdir":  {"mkdir <name>", "create a folder", runMkdir},
		"rename": {"rename <old> <new>", "rename one file or folder", runRename},
		"batch":  {"batch <base> [-s N] [-n] <file>...|*", "rename files to base_N.ext (-n: preview only)", runBatch},
		"size":   {"size [name]", "show the size of a file or folder", runSize},
		"find":   {"find <query>", "fuzzy-find files below the root", runFind},
		"clear":  {"clear", "clear the console", runClear},
	}
}

// Exec runs one command line. Words follow shell quoting rules: single or
// double quotes group words with spaces, a backslash escapes the next
// character. Errors are reported as output lines prefixed with "error:";
// the returned State is then the input State.
func Exec(st State, line string) Response {
	words, err := shellquote.Split(line)
	if err != nil {
		return failed(st, err)
	}
	if len(words) == 0 {
		return Response{State: st}
	}
	name := strings.ToLower(words[0])
	cmd, ok := commands[name]
	if !ok {
		return failed(st, fmt.Errorf("unknown command %q (type help)", words[0]))
	}
	resp, err := cmd.run(st, words[1:])
	if err != nil {
		return failed(st, err)
	}
	return resp
}

func failed(st State, err error) Response {
	return Response{State: st, Lines: []string{"error: " + err.Error()}}
}

func usageError(name string) error {
	return fmt.Errorf("usage: %s", commands[name].usage)
}

func runHelp(st State, _ []string) (Response, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names)+1)
	lines = append(lines, "Commands:")
	for _, name := range names {
		c := commands[name]
		lines = append(lines, fmt.Sprintf("  %-38s %s", c.usage, c.help))
	}
	return Response{State: st, Lines: lines}, nil
}

func runPwd(st State, _ []string) (Response, error) {
	return Response{State: st, Lines: []string{st.Scope.Display()}}, nil
}

func runLs(st State, args []string) (Response, error) {
	recursive := false
	for _, a := range args {
		if a != "-r" {
			return Response{}, usageError("ls")
		}
		recursive = true
	}
	var (
		entries []listing.Entry
		err     error
	)
	if recursive {
		entries, err = listing.Walk(st.Scope, st.Scope.Current())
	} else {
		entries, err = listing.List(st.Scope, st.Scope.Current())
	}
	if err != nil {
		return Response{}, err
	}
	if len(entries) == 0 {
		return Response{State: st, Lines: []string{"(empty)"}}, nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if recursive {
			name = st.Scope.RelativeDisplay(e.Path)
		}
		if e.IsDir {
			lines = append(lines, fmt.Sprintf("%-40s %10s  %s", name+"/", "<dir>", display.FormatModTime(e.ModTime)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-40s %10s  %s", name, display.FormatBytes(e.Size), display.FormatModTime(e.ModTime)))
	}
	return Response{State: st, Lines: lines}, nil
}

func runCd(st State, args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usageError("cd")
	}
	var (
		next scope.Scope
		err  error
	)
	switch args[0] {
	case "..":
		next, err = st.Scope.Ascend()
	case "/", "~":
		next = st.Scope.Home()
	default:
		next, err = st.Scope.Enter(args[0])
	}
	if err != nil {
		return Response{}, navError(err)
	}
	return moved(st, next), nil
}

func runUp(st State, args []string) (Response, error) {
	if len(args) != 0 {
		return Response{}, usageError("up")
	}
	next, err := st.Scope.Ascend()
	if err != nil {
		return Response{}, navError(err)
	}
	return moved(st, next), nil
}

func moved(st State, next scope.Scope) Response {
	st.Scope = next
	return Response{State: st, Lines: []string{next.Display()}, Refresh: true}
}

func navError(err error) error {
	switch {
	case errors.Is(err, scope.ErrAtRoot):
		return errors.New("already at the root folder")
	case errors.Is(err, scope.ErrScopeViolation):
		return errors.New("cannot leave the root folder")
	}
	return err
}

func runMkdir(st State, args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usageError("mkdir")
	}
	path, err := listing.MakeDir(st.Scope, st.Scope.Current(), args[0])
	if err != nil {
		return Response{}, err
	}
	return Response{State: st, Lines: []string{"created " + st.Scope.RelativeDisplay(path)}, Refresh: true}, nil
}

func runRename(st State, args []string) (Response, error) {
	if len(args) != 2 {
		return Response{}, usageError("rename")
	}
	src, err := st.Scope.Resolve(args[0])
	if err != nil {
		return Response{}, navError(err)
	}
	if filepath.Dir(src) != st.Scope.Current() {
		return Response{}, errors.New("rename works on names in the current folder")
	}
	dst, err := rename.Single(src, args[1])
	if err != nil {
		return Response{}, err
	}
	return Response{
		State:   st,
		Lines:   []string{fmt.Sprintf("%s → %s", filepath.Base(src), filepath.Base(dst))},
		Refresh: true,
	}, nil
}

func runBatch(st State, args []string) (Response, error) {
	if len(args) < 2 {
		return Response{}, usageError("batch")
	}
	job := rename.Job{Base: args[0], Start: st.Start}
	preview := false
	var names []string
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-s":
			if i+1 >= len(args) {
				return Response{}, usageError("batch")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return Response{}, fmt.Errorf("invalid start index %q", args[i+1])
			}
			job.Start = n
			i++
		case "-n":
			preview = true
		default:
			names = append(names, args[i])
		}
	}
	sources, err := batchSources(st.Scope, names)
	if err != nil {
		return Response{}, err
	}
	if len(sources) == 0 {
		return Response{}, errors.New("no files to rename")
	}
	job.Sources = rename.SortedUnique(sources)

	if preview {
		outcomes, err := rename.Preview(job)
		if err != nil {
			return Response{}, err
		}
		return Response{State: st, Lines: strings.Split(display.PreviewSummary(outcomes, 0), "\n")}, nil
	}
	res, err := rename.Run(job)
	if err != nil {
		return Response{}, err
	}
	return Response{
		State:   st,
		Lines:   strings.Split(display.BatchSummary(res), "\n"),
		Refresh: true,
		Batch:   &res,
	}, nil
}

// batchSources resolves names against the current folder. "*" stands for
// every file in it.
func batchSources(sc scope.Scope, names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		if name == "*" {
			entries, err := listing.List(sc, sc.Current())
			if err != nil {
				return nil, err
			}
			out = append(out, listing.Files(entries)...)
			continue
		}
		p, err := sc.Resolve(name)
		if err != nil {
			return nil, navError(err)
		}
		// Missing names are kept: Run reports them as skipped.
		out = append(out, p)
	}
	return out, nil
}

func runSize(st State, args []string) (Response, error) {
	path := st.Scope.Current()
	switch len(args) {
	case 0:
	case 1:
		p, err := st.Scope.Resolve(args[0])
		if err != nil {
			return Response{}, navError(err)
		}
		path = p
	default:
		return Response{}, usageError("size")
	}
	n, err := listing.Size(path)
	if err != nil {
		return Response{}, err
	}
	return Response{State: st, Lines: []string{fmt.Sprintf("%s: %s", st.Scope.RelativeDisplay(path), display.FormatBytes(n))}}, nil
}

func runFind(st State, args []string) (Response, error) {
	if len(args) == 0 {
		return Response{}, usageError("find")
	}
	entries, err := listing.Walk(st.Scope, st.Scope.Root())
	if err != nil {
		return Response{}, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, st.Scope.RelativeDisplay(e.Path))
	}
	found := listing.FindPaths(strings.Join(args, " "), paths, FindLimit)
	if len(found) == 0 {
		return Response{State: st, Lines: []string{"no matches"}}, nil
	}
	return Response{State: st, Lines: found}, nil
}

func runClear(st State, _ []string) (Response, error) {
	return Response{State: st, Clear: true}, nil
}
