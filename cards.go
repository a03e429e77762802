package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"FileCardManager/internal/display"
	"FileCardManager/internal/listing"
)

// cardTitle is the name line of a card. A single tap and a double tap
// are reported separately.
type cardTitle struct {
	widget.Label
	onTapped       func()
	onDoubleTapped func()
}

var _ fyne.Tappable = (*cardTitle)(nil)
var _ fyne.DoubleTappable = (*cardTitle)(nil)

func newCardTitle(text string, onTapped, onDoubleTapped func()) *cardTitle {
	t := &cardTitle{onTapped: onTapped, onDoubleTapped: onDoubleTapped}
	t.ExtendBaseWidget(t)
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Truncation = fyne.TextTruncateEllipsis
	t.SetText(text)
	return t
}

func (t *cardTitle) Tapped(_ *fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

func (t *cardTitle) DoubleTapped(_ *fyne.PointEvent) {
	if t.onDoubleTapped != nil {
		t.onDoubleTapped()
	}
}

// nameEditor is the inline name editor. Escape cancels the edit; losing
// focus commits it like Enter does.
type nameEditor struct {
	widget.Entry
	onCancel    func()
	onFocusLost func()
}

func newNameEditor() *nameEditor {
	e := &nameEditor{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *nameEditor) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape {
		if e.onCancel != nil {
			e.onCancel()
		}
		return
	}
	e.Entry.TypedKey(key)
}

func (e *nameEditor) FocusLost() {
	e.Entry.FocusLost()
	if e.onFocusLost != nil {
		e.onFocusLost()
	}
}

type fileCard struct {
	entry   listing.Entry
	title   *cardTitle
	edit    *nameEditor   // inline rename, files only
	check   *widget.Check // selection, files only
	object  fyne.CanvasObject
	editing bool
}

func caption(text string) *widget.RichText {
	rt := widget.NewRichText(&widget.TextSegment{
		Text: text,
		Style: widget.RichTextStyle{
			SizeName:  theme.SizeNameCaptionText,
			ColorName: theme.ColorNamePlaceHolder,
		},
	})
	rt.Wrapping = fyne.TextWrapWord
	return rt
}

func (m *fileManager) newFileCard(e listing.Entry) *fileCard {
	c := &fileCard{entry: e}

	icon := widget.NewIcon(theme.FileIcon())
	if e.IsDir {
		icon.SetResource(theme.FolderIcon())
	}

	info := container.NewVBox(caption("Modified: " + display.FormatModTime(e.ModTime)))
	if !e.IsDir {
		info.Add(caption("Size: " + display.FormatBytes(e.Size)))
	}

	tags := container.NewVBox()
	for _, row := range display.TagRows(e.Tags, display.TagsPerRow) {
		line := container.NewHBox()
		for _, tag := range row {
			line.Add(caption("📁 " + tag))
		}
		tags.Add(line)
	}

	var header fyne.CanvasObject
	if e.IsDir {
		c.title = newCardTitle(e.Name, nil, func() { _ = m.enter(e.Name) })
		header = container.NewBorder(nil, nil, icon, nil, c.title)
	} else {
		c.edit = newNameEditor()
		c.edit.Hide()
		c.edit.OnSubmitted = func(name string) { m.submitRename(c, name) }
		c.edit.onFocusLost = func() { m.submitRename(c, c.edit.Text) }
		c.edit.onCancel = c.stopEdit

		c.check = widget.NewCheck("", func(on bool) { m.setSelected(e.Path, on) })
		c.check.SetChecked(m.state.selected[e.Path])

		c.title = newCardTitle(e.Name,
			func() { c.check.SetChecked(!c.check.Checked) },
			func() { m.startEdit(c) },
		)
		header = container.NewBorder(nil, nil, icon, c.check, container.NewStack(c.title, c.edit))
	}

	c.object = widget.NewCard("", "", container.NewVBox(header, info, tags))
	return c
}

func (m *fileManager) startEdit(c *fileCard) {
	c.editing = true
	c.edit.SetText(c.entry.Name)
	c.title.Hide()
	c.edit.Show()
	m.win.Canvas().Focus(c.edit)
}

func (c *fileCard) stopEdit() {
	c.editing = false
	c.edit.Hide()
	c.title.Show()
}

// submitRename commits an inline edit once. Enter hides the editor, which
// can also report a focus loss.
func (m *fileManager) submitRename(c *fileCard, name string) {
	if !c.editing {
		return
	}
	c.stopEdit()
	if name == c.entry.Name {
		return
	}
	if err := m.renameEntry(c.entry.Path, name); err != nil {
		dialog.ShowError(err, m.win)
	}
}
