package progress

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	buildingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	finalizedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	executingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	materializedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	exhaustedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doneStyle        = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("42"))
)
