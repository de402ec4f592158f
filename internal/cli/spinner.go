package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/wellplan/internal/cli/formatter"
)

type taskDoneMsg struct{}

// spinnerModel shows a spinner until the task it waits on reports back.
type spinnerModel struct {
	spinner     spinner.Model
	message     string
	done        bool
	interrupted bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.interrupted {
		return ""
	}
	return fmt.Sprintf("  %s %s", m.spinner.View(), formatter.Dim(m.message))
}

// withSpinner runs task, drawing a spinner on out while it works when the
// terminal is interactive. Ctrl+C cancels the task's context.
func withSpinner(ctx context.Context, app *App, out io.Writer, message string, task func(context.Context) error) error {
	if !app.interactive() {
		return task(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(out))
	errc := make(chan error, 1)
	go func() {
		errc <- task(ctx)
		p.Send(taskDoneMsg{})
	}()

	// The task keeps running if the spinner cannot draw.
	if final, err := p.Run(); err == nil {
		if m, ok := final.(spinnerModel); ok && m.interrupted {
			cancel()
		}
	}
	return <-errc
}
