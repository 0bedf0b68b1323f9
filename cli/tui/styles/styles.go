package styles

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("#04B575")
	Danger  = lipgloss.Color("204")
	Muted   = lipgloss.Color("245")

	// SuccessLabel highlights the label of a finished tour.
	SuccessLabel = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	// FailureLabel highlights failed executions and errors.
	FailureLabel = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	Hint         = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	Spinner      = lipgloss.NewStyle().Foreground(Primary)
	Header       = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Left)
)
