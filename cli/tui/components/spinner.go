package components

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/compozy/foodietour/cli/tui/styles"
	"github.com/compozy/foodietour/pkg/logger"
)

type doneMsg struct{}

// SpinnerModel shows a spinner with a title until the wrapped work is done.
type SpinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func NewSpinnerModel(title string) SpinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	return SpinnerModel{spinner: s, title: title}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), styles.Hint.Render(m.title))
}

// Done reports whether the wrapped work finished.
func (m SpinnerModel) Done() bool {
	return m.done
}

// RunWithSpinner runs fn while a spinner is drawn on out and returns fn's
// error. Spinner failures are logged and never hide the result of fn.
func RunWithSpinner(ctx context.Context, out io.Writer, title string, fn func(context.Context) error) error {
	program := tea.NewProgram(
		NewSpinnerModel(title),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	result := make(chan error, 1)
	go func() {
		result <- fn(ctx)
		program.Send(doneMsg{})
	}()
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.FromContext(ctx).Debug("spinner stopped", "error", err)
	}
	return <-result
}
