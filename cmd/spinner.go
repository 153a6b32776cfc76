package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Requests slower than this get an elapsed counter next to the label.
const slowRequestAfter = 2 * time.Second

type loadedMsg[T any] struct {
	value T
	err   error
}

type loadingModel[T any] struct {
	spinner spinner.Model
	hint    lipgloss.Style
	label   string
	started time.Time
	load    tea.Cmd

	finished bool
	value    T
	err      error
}

func newLoadingModel[T any](label string, load tea.Cmd) loadingModel[T] {
	return loadingModel[T]{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("36"))),
		),
		hint:    lipgloss.NewStyle().Faint(true),
		label:   label,
		started: time.Now(),
		load:    load,
	}
}

func (m loadingModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m loadingModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		m.finished = true
		m.value, m.err = msg.value, msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loadingModel[T]) View() string {
	if m.finished {
		return ""
	}
	line := m.spinner.View() + " " + m.label
	if elapsed := time.Since(m.started); elapsed >= slowRequestAfter {
		line += m.hint.Render(fmt.Sprintf(" (%ds)", int(elapsed.Seconds())))
	}
	return line
}

// loadWithSpinner runs load while animating label on output, which should be
// stderr so piped stdout stays clean.
func loadWithSpinner[T any](ctx context.Context, output io.Writer, label string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	run := func() tea.Msg {
		value, err := load(ctx)
		return loadedMsg[T]{value: value, err: err}
	}

	final, err := tea.NewProgram(
		newLoadingModel[T](label, run),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		return zero, err
	}

	done, ok := final.(loadingModel[T])
	if !ok {
		return zero, fmt.Errorf("spinner finished with %T", final)
	}
	return done.value, done.err
}
