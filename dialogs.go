package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"FileCardManager/internal/display"
	"FileCardManager/internal/rename"
)

// previewLimit caps the lines shown in the dry-run dialog.
const previewLimit = 200

const helpText = `💡 How to use:

• Double-click a file name to rename it in place
• Double-click a folder to open it; "Up" goes back
• Checkboxes select several files
• "Select all" selects or clears every file shown
• "Rename group" renames the selected files
• "Refresh" reloads the file list
• The console below accepts commands; type help

📝 Group rename:
1. Select files with the checkboxes
2. Press "Rename group"
3. Enter a base name
4. Files are renamed to base_1.ext, base_2.ext and so on`

func (m *fileManager) mainMenu() *fyne.MainMenu {
	// fyne adds Quit to the first menu; Exit goes through the same shutdown.
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("New folder", m.showNewFolderDialog),
		fyne.NewMenuItem("Undo last group rename", m.showUndoLast),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			m.shutdown()
			m.win.Close()
		}),
	)
	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("Help", m.showHelp),
	)
	return fyne.NewMainMenu(file, help)
}

func (m *fileManager) showHelp() {
	dialog.ShowInformation("Help", helpText, m.win)
}

func (m *fileManager) showNewFolderDialog() {
	name := widget.NewEntry()
	name.SetPlaceHolder("Folder name")
	name.Validator = func(s string) error {
		if reason := rename.InvalidNameReason(strings.TrimSpace(s)); reason != "" {
			return errors.New(reason)
		}
		return nil
	}
	items := []*widget.FormItem{widget.NewFormItem("Name", name)}
	dialog.ShowForm("New folder", "Create", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		n := strings.TrimSpace(name.Text)
		if _, err := m.createFolder(n); err != nil {
			dialog.ShowError(fmt.Errorf("cannot create folder: %w", err), m.win)
			return
		}
		dialog.ShowInformation("Success", fmt.Sprintf("Folder '%s' created", n), m.win)
	}, m.win)
}

func (m *fileManager) showBatchDialog() {
	paths := m.selectedPaths()
	if len(paths) == 0 {
		dialog.ShowInformation("Information", "Select files to rename.", m.win)
		return
	}

	base := widget.NewEntry()
	base.SetPlaceHolder("e.g. photo")
	base.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return rename.ErrEmptyBase
		}
		return nil
	}
	start := widget.NewEntry()
	start.SetText(strconv.Itoa(m.cfg.StartIndex))
	start.Validator = func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return rename.ErrInvalidStart
		}
		return nil
	}
	dryRun := widget.NewCheck("Preview first (dry run)", nil)
	dryRun.SetChecked(true)
	undoLog := widget.NewCheck("Create undo log (CSV)", nil)
	undoLog.SetChecked(m.cfg.UndoLog)

	items := []*widget.FormItem{
		widget.NewFormItem("", widget.NewLabel(fmt.Sprintf("Selected files: %d", len(paths)))),
		widget.NewFormItem("Base name", base),
		widget.NewFormItem("Start index", start),
		widget.NewFormItem("", dryRun),
		widget.NewFormItem("", undoLog),
	}
	d := dialog.NewForm("Rename group", "Rename", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		n, _ := strconv.Atoi(strings.TrimSpace(start.Text))
		job := rename.Job{Sources: rename.SortedUnique(paths), Base: strings.TrimSpace(base.Text), Start: n}
		if dryRun.Checked {
			m.confirmBatch(job, undoLog.Checked)
			return
		}
		m.runBatch(job, undoLog.Checked)
	}, m.win)
	d.Resize(fyne.NewSize(420, 300))
	d.Show()
}

// confirmBatch shows the dry-run outcome and runs the job on confirmation.
func (m *fileManager) confirmBatch(job rename.Job, undoLog bool) {
	outcomes, err := rename.Preview(job)
	if err != nil {
		dialog.ShowError(err, m.win)
		return
	}
	msg := widget.NewLabel(display.PreviewSummary(outcomes, previewLimit))
	msg.Wrapping = fyne.TextWrapWord
	confirm := dialog.NewCustomConfirm("Confirm rename", "Proceed", "Cancel",
		container.NewVScroll(msg),
		func(ok bool) {
			if ok {
				m.runBatch(job, undoLog)
			}
		}, m.win)
	confirm.Resize(fyne.NewSize(700, 420))
	confirm.Show()
}

func (m *fileManager) runBatch(job rename.Job, undoLog bool) {
	res, err := m.performBatchRename(job.Sources, job.Base, job.Start, undoLog)
	if err != nil {
		m.log.Error("%v", err)
		dialog.ShowError(err, m.win)
		return
	}
	m.showResult("Result", res)
}

func (m *fileManager) showResult(title string, res rename.Result) {
	msg := widget.NewLabel(display.BatchSummary(res))
	msg.Wrapping = fyne.TextWrapWord
	d := dialog.NewCustom(title, "OK", container.NewVScroll(msg), m.win)
	d.Resize(fyne.NewSize(520, 320))
	d.Show()
}

func (m *fileManager) showUndoLast() {
	res, err := m.undoLast()
	if err != nil {
		if errors.Is(err, errNothingToUndo) {
			dialog.ShowInformation("Undo", "There is no group rename to undo.", m.win)
			return
		}
		m.log.Error("Undo failed: %v", err)
		dialog.ShowError(err, m.win)
		return
	}
	m.showResult("Undo", res)
}
