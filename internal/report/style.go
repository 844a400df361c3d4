package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"gameday/internal/workflow"
)

// Sprint color functions for building styled strings.
var (
	Bold      = color.New(color.Bold).SprintFunc()
	Dim       = color.New(color.Faint).SprintFunc()
	Cyan      = color.New(color.FgCyan).SprintFunc()
	Green     = color.New(color.FgGreen).SprintFunc()
	Red       = color.New(color.FgRed).SprintFunc()
	Yellow    = color.New(color.FgYellow).SprintFunc()
	BoldGreen = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed   = color.New(color.Bold, color.FgRed).SprintFunc()
)

// StatusIcon returns a colored status icon for the node table.
func StatusIcon(state workflow.NodeState) string {
	switch state {
	case workflow.StateCompleted:
		return Green("✓")
	case workflow.StateRunning:
		return Cyan("●")
	case workflow.StateFailed:
		return Red("✗")
	default:
		return Dim("◌")
	}
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	winnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))
)
