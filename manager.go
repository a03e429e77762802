package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"FileCardManager/internal/config"
	"FileCardManager/internal/listing"
	"FileCardManager/internal/logging"
	"FileCardManager/internal/rename"
	"FileCardManager/internal/scope"
	"FileCardManager/internal/watch"
)

const prefLastDir = "nav.last_dir"

/* -------------------- App State -------------------- */

type AppState struct {
	scope scope.Scope

	entries     []listing.Entry // current folder (or every file below it)
	viewEntries []listing.Entry // after the search filter

	selected map[string]bool

	query         string
	mode          listing.SearchMode
	caseSensitive bool
	recursive     bool

	lastUndo string // undo log of the last batch, "" when none
}

type fileManager struct {
	app     fyne.App
	win     fyne.Window
	cfg     config.Config
	log     *logging.Logger
	state   *AppState
	watcher *watch.Watcher

	pathLabel    *widget.Label
	crumbs       *fyne.Container
	upBtn        *widget.Button
	batchBtn     *widget.Button
	selectAllBtn *widget.Button
	countLabel   *widget.Label
	grid         *fyne.Container
	cards        []*fileCard

	console *consolePanel
}

func newFileManager(a fyne.App, w fyne.Window, cfg config.Config, log *logging.Logger, sc scope.Scope) *fileManager {
	return &fileManager{
		app: a,
		win: w,
		cfg: cfg,
		log: log,
		state: &AppState{
			scope:     sc,
			selected:  map[string]bool{},
			mode:      listing.ModeContains,
			recursive: cfg.Recursive,
		},
	}
}

/* -------------------- Layout -------------------- */

func (m *fileManager) build() fyne.CanvasObject {
	m.pathLabel = widget.NewLabel("")
	m.pathLabel.TextStyle = fyne.TextStyle{Bold: true}
	m.crumbs = container.NewHBox()

	m.upBtn = widget.NewButton("Up", func() { _ = m.ascend() })
	refreshBtn := widget.NewButton("Refresh", m.refresh)
	newFolderBtn := widget.NewButton("New folder", m.showNewFolderDialog)
	m.batchBtn = widget.NewButton("Rename group", m.showBatchDialog)
	m.batchBtn.Disable()
	m.selectAllBtn = widget.NewButton("Select all", m.toggleSelectAll)

	topBar := container.NewBorder(nil, nil,
		container.NewHBox(m.upBtn, m.pathLabel),
		container.NewHBox(m.selectAllBtn, m.batchBtn, newFolderBtn, refreshBtn),
		container.NewHScroll(m.crumbs),
	)

	modes := make([]string, 0, len(listing.Modes))
	for _, md := range listing.Modes {
		modes = append(modes, string(md))
	}
	modeSelect := widget.NewSelect(modes, nil)
	modeSelect.SetSelected(string(m.state.mode))
	modeSelect.OnChanged = func(sel string) {
		m.state.mode = listing.SearchMode(sel)
		m.applySearch()
	}

	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Search… e.g. report, png")
	searchEntry.OnChanged = func(s string) {
		m.state.query = s
		m.applySearch()
	}

	caseCheck := widget.NewCheck("Case sensitive", func(v bool) {
		m.state.caseSensitive = v
		m.applySearch()
	})
	recursiveCheck := widget.NewCheck("Include subfolders", nil)
	recursiveCheck.SetChecked(m.state.recursive)
	recursiveCheck.OnChanged = func(v bool) {
		m.state.recursive = v
		m.refresh()
	}

	m.countLabel = widget.NewLabel("")
	searchBar := container.NewBorder(nil, nil,
		modeSelect,
		container.NewHBox(caseCheck, recursiveCheck, m.countLabel),
		searchEntry,
	)

	m.grid = container.NewGridWithColumns(m.cfg.Columns)
	cards := container.NewVScroll(m.grid)

	m.console = newConsolePanel(m)
	m.log.AddSink(func(level, text string) {
		if level != logging.LevelWarn && level != logging.LevelError {
			return
		}
		fyne.Do(func() { m.console.append(level + ": " + text) })
	})

	split := container.NewVSplit(cards, m.console.object)
	split.Offset = 0.75

	return container.NewBorder(
		container.NewVBox(topBar, searchBar, widget.NewSeparator()),
		nil, nil, nil,
		split,
	)
}

/* -------------------- Refresh -------------------- */

// refresh re-reads the current folder and re-renders everything that
// depends on it. Every operation that touches the filesystem ends here.
func (m *fileManager) refresh() {
	st := m.state
	var (
		entries []listing.Entry
		err     error
	)
	if st.recursive {
		entries, err = listing.Walk(st.scope, st.scope.Current())
	} else {
		entries, err = listing.List(st.scope, st.scope.Current())
	}
	if err != nil {
		m.log.Error("%v", err)
		dialog.ShowError(err, m.win)
		entries = nil
	}
	st.entries = entries

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Path] = true
	}
	for p := range st.selected {
		if !present[p] {
			delete(st.selected, p)
		}
	}

	m.updatePath()
	m.applySearch()
	m.watchCurrent()
	m.app.Preferences().SetString(prefLastDir, m.relativeCurrent())
}

func (m *fileManager) applySearch() {
	st := m.state
	st.viewEntries = listing.Search(st.entries, st.query, st.mode, st.caseSensitive)
	m.renderCards()
	m.updateSelectionButtons()
	if st.query == "" {
		m.countLabel.SetText(fmt.Sprintf("%d item(s)", len(st.entries)))
	} else {
		m.countLabel.SetText(fmt.Sprintf("%d of %d item(s)", len(st.viewEntries), len(st.entries)))
	}
}

func (m *fileManager) renderCards() {
	m.cards = m.cards[:0]
	objects := make([]fyne.CanvasObject, 0, len(m.state.viewEntries))
	for _, e := range m.state.viewEntries {
		c := m.newFileCard(e)
		m.cards = append(m.cards, c)
		objects = append(objects, c.object)
	}
	if len(objects) == 0 {
		objects = append(objects, widget.NewLabel("No files here. Use File → New folder or the console to add some."))
	}
	m.grid.Objects = objects
	m.grid.Refresh()
}

func (m *fileManager) updatePath() {
	sc := m.state.scope
	m.pathLabel.SetText("Current path: " + sc.Display())

	m.crumbs.Objects = nil
	for i, c := range sc.Breadcrumbs() {
		if i > 0 {
			m.crumbs.Add(widget.NewLabel("/"))
		}
		path := c.Path
		b := widget.NewButton(c.Label, func() { _ = m.jump(path) })
		b.Importance = widget.LowImportance
		m.crumbs.Add(b)
	}
	m.crumbs.Refresh()

	if sc.AtRoot() {
		m.upBtn.Disable()
	} else {
		m.upBtn.Enable()
	}
}

/* -------------------- Navigation -------------------- */

func (m *fileManager) navigate(next scope.Scope) {
	m.state.scope = next
	m.state.selected = map[string]bool{}
	m.refresh()
}

func (m *fileManager) enter(name string) error {
	next, err := m.state.scope.Enter(name)
	if err != nil {
		m.reportNavError(err)
		return err
	}
	m.navigate(next)
	return nil
}

func (m *fileManager) ascend() error {
	next, err := m.state.scope.Ascend()
	if err != nil {
		m.reportNavError(err)
		return err
	}
	m.navigate(next)
	return nil
}

func (m *fileManager) jump(path string) error {
	next, err := m.state.scope.Jump(path)
	if err != nil {
		m.reportNavError(err)
		return err
	}
	m.navigate(next)
	return nil
}

func (m *fileManager) reportNavError(err error) {
	m.log.Warn("Navigation refused: %v", err)
	switch {
	case errors.Is(err, scope.ErrAtRoot):
		dialog.ShowInformation("Navigation", "You are already in the root folder.", m.win)
	case errors.Is(err, scope.ErrScopeViolation):
		dialog.ShowInformation("Navigation", "That folder is outside the root folder.", m.win)
	default:
		dialog.ShowError(err, m.win)
	}
}

func (m *fileManager) relativeCurrent() string {
	sc := m.state.scope
	if sc.AtRoot() {
		return ""
	}
	rel, err := filepath.Rel(sc.Root(), sc.Current())
	if err != nil {
		return ""
	}
	return rel
}

// restoreLastDir reopens the folder of the previous session when it still
// exists inside the root.
func (m *fileManager) restoreLastDir() {
	rel := m.app.Preferences().String(prefLastDir)
	if rel == "" {
		return
	}
	next, err := m.state.scope.Enter(rel)
	if err != nil {
		m.log.Debug("Not restoring %q: %v", rel, err)
		return
	}
	m.state.scope = next
}

/* -------------------- Selection -------------------- */

func (m *fileManager) setSelected(path string, on bool) {
	if on {
		m.state.selected[path] = true
	} else {
		delete(m.state.selected, path)
	}
	m.updateSelectionButtons()
}

func (m *fileManager) selectableCount() int {
	n := 0
	for _, e := range m.state.viewEntries {
		if !e.IsDir {
			n++
		}
	}
	return n
}

func (m *fileManager) allSelected() bool {
	n := m.selectableCount()
	return n > 0 && len(m.state.selected) == n
}

func (m *fileManager) toggleSelectAll() {
	selectAll := !m.allSelected()
	m.state.selected = map[string]bool{}
	if selectAll {
		for _, e := range m.state.viewEntries {
			if !e.IsDir {
				m.state.selected[e.Path] = true
			}
		}
	}
	for _, c := range m.cards {
		if c.check != nil {
			c.check.SetChecked(m.state.selected[c.entry.Path])
		}
	}
	m.updateSelectionButtons()
}

func (m *fileManager) updateSelectionButtons() {
	if len(m.state.selected) > 0 {
		m.batchBtn.Enable()
	} else {
		m.batchBtn.Disable()
	}
	if m.allSelected() {
		m.selectAllBtn.SetText("Clear selection")
	} else {
		m.selectAllBtn.SetText("Select all")
	}
}

func (m *fileManager) selectedPaths() []string {
	out := make([]string, 0, len(m.state.selected))
	for p := range m.state.selected {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

/* -------------------- Operations -------------------- */

func (m *fileManager) renameEntry(path, newName string) error {
	dst, err := rename.Single(path, newName)
	if err != nil {
		m.log.Error("%v", err)
		return err
	}
	if dst != path {
		m.log.Info("Renamed %s → %s", m.state.scope.RelativeDisplay(path), filepath.Base(dst))
		if m.state.selected[path] {
			delete(m.state.selected, path)
			m.state.selected[dst] = true
		}
	}
	m.refresh()
	return nil
}

func (m *fileManager) createFolder(name string) (string, error) {
	path, err := listing.MakeDir(m.state.scope, m.state.scope.Current(), name)
	if err != nil {
		m.log.Error("%v", err)
		return "", err
	}
	m.log.Info("Created folder %s", m.state.scope.RelativeDisplay(path))
	m.refresh()
	return path, nil
}

// performBatchRename renames paths to base_N.ext starting at start. The
// rename is partial on failure; the result lists every file.
func (m *fileManager) performBatchRename(paths []string, base string, start int, undoLog bool) (rename.Result, error) {
	job := rename.Job{Sources: rename.SortedUnique(paths), Base: base, Start: start}
	res, err := rename.Run(job)
	if err != nil {
		return res, err
	}
	m.recordBatch(res, undoLog)
	m.state.selected = map[string]bool{}
	m.refresh()
	return res, nil
}

// recordBatch logs a finished batch and writes its undo log.
func (m *fileManager) recordBatch(res rename.Result, undoLog bool) {
	m.log.Info("Batch rename: %d of %d file(s) renamed", res.Succeeded, len(res.Outcomes))
	for _, w := range res.Warnings() {
		m.log.Warn("%s", w)
	}
	if !undoLog || res.Succeeded == 0 {
		return
	}
	path, err := m.saveUndoLog(res)
	if err != nil {
		m.log.Error("Cannot write undo log: %v", err)
		return
	}
	m.state.lastUndo = path
	m.log.Debug("Undo log: %s", path)
}

func (m *fileManager) saveUndoLog(res rename.Result) (string, error) {
	dir := m.cfg.UndoPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("undo_log_%s.csv", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(dir, name)
	if err := rename.SaveUndoCSV(path, res.Outcomes); err != nil {
		return "", err
	}
	return path, nil
}

var errNothingToUndo = errors.New("nothing to undo")

func (m *fileManager) undoLast() (rename.Result, error) {
	if m.state.lastUndo == "" {
		return rename.Result{}, errNothingToUndo
	}
	records, err := rename.LoadUndoCSV(m.state.lastUndo)
	if err != nil {
		return rename.Result{}, err
	}
	res := rename.Undo(records)
	m.log.Info("Undo: %d file(s) restored", res.Succeeded)
	for _, w := range res.Warnings() {
		m.log.Warn("%s", w)
	}
	m.state.lastUndo = ""
	m.refresh()
	return res, nil
}

/* -------------------- Watcher -------------------- */

func (m *fileManager) startWatcher() {
	if !m.cfg.Watch {
		return
	}
	w, err := watch.New(watch.DefaultDebounce, func(dir string) {
		fyne.Do(func() {
			if dir == m.state.scope.Current() {
				m.refresh()
			}
		})
	}, func(err error) {
		m.log.Warn("File watcher: %v", err)
	})
	if err != nil {
		m.log.Warn("%v", err)
		return
	}
	m.watcher = w
}

func (m *fileManager) watchCurrent() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.SetDir(m.state.scope.Current()); err != nil {
		m.log.Warn("%v", err)
	}
}

func (m *fileManager) shutdown() {
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
}
