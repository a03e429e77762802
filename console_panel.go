package main

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"FileCardManager/internal/console"
)

// maxConsoleLines bounds the console scrollback.
const maxConsoleLines = 500

type consolePanel struct {
	m      *fileManager
	lines  []string
	output *widget.Label
	scroll *container.Scroll
	input  *widget.Entry
	object fyne.CanvasObject
}

func newConsolePanel(m *fileManager) *consolePanel {
	p := &consolePanel{m: m}
	p.output = widget.NewLabel("")
	p.output.TextStyle = fyne.TextStyle{Monospace: true}
	p.output.Wrapping = fyne.TextWrapBreak
	p.scroll = container.NewVScroll(p.output)

	p.input = widget.NewEntry()
	p.input.SetPlaceHolder("Type a command (help for the list) and press Enter")
	p.input.OnSubmitted = func(line string) {
		p.input.SetText("")
		p.run(line)
	}

	header := widget.NewLabelWithStyle("Console", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.object = container.NewBorder(header, p.input, nil, nil, p.scroll)
	return p
}

func (p *consolePanel) append(lines ...string) {
	p.lines = append(p.lines, lines...)
	if over := len(p.lines) - maxConsoleLines; over > 0 {
		p.lines = append([]string(nil), p.lines[over:]...)
	}
	p.output.SetText(strings.Join(p.lines, "\n"))
	p.scroll.ScrollToBottom()
}

func (p *consolePanel) clear() {
	p.lines = nil
	p.output.SetText("")
}

// run executes one command line and applies its result to the window.
func (p *consolePanel) run(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	m := p.m
	p.append("> " + line)

	st := console.State{Scope: m.state.scope, Start: m.cfg.StartIndex}
	resp := console.Exec(st, line)
	if resp.Clear {
		p.clear()
	}
	if len(resp.Lines) > 0 {
		p.append(resp.Lines...)
	}
	m.log.Debug("console: %s", line)

	if resp.Batch != nil {
		// cards may point at renamed files
		m.state.selected = map[string]bool{}
		m.recordBatch(*resp.Batch, m.cfg.UndoLog)
	}
	if resp.State.Scope.Current() != m.state.scope.Current() {
		m.navigate(resp.State.Scope)
		return
	}
	if resp.Refresh {
		m.refresh()
	}
}
