package view

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("view: renderer finished with an unexpected model")

// layoutMsg carries the width the document is laid out for. Zero leaves
// lines unwrapped.
type layoutMsg struct{ width int }

type page struct {
	doc    Document
	opts   Options
	styles styles
	text   string
}

func (p page) Init() tea.Cmd {
	width := p.opts.Width
	return func() tea.Msg { return layoutMsg{width: width} }
}

func (p page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	layout, ok := msg.(layoutMsg)
	if !ok {
		return p, nil
	}
	p.text = renderDocument(p.doc, p.opts, p.styles)
	if layout.width > 0 {
		p.text = lipgloss.NewStyle().Width(layout.width).Render(p.text)
	}
	return p, tea.Quit
}

func (p page) View() string { return p.text }

// Render lays out doc once and returns the styled text. Nothing is written
// to the terminal; callers print the result themselves.
func Render(doc Document, opts Options) (string, error) {
	final, err := tea.NewProgram(
		page{doc: doc, opts: opts, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	).Run()
	if err != nil {
		return "", err
	}

	rendered, ok := final.(page)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return rendered.text, nil
}
