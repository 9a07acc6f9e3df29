package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marachen/relflow/internal/pipeline"
)

// View renders the dashboard's current state.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("relflow watch"))
	sections = append(sections, sectionStyle.Render("Pipelines"))

	var rows []string
	for _, name := range m.order {
		rows = append(rows, fmt.Sprintf(" %s %s", StateIcon(m.states[name]), name))
	}
	sections = append(sections, strings.Join(rows, "\n"))

	if m.done {
		sections = append(sections, doneStyle.Render("run complete"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// StateIcon returns the glyph representing a pipeline lifecycle state.
func StateIcon(s pipeline.State) string {
	switch s {
	case pipeline.StateBuilding:
		return buildingStyle.Render("…")
	case pipeline.StateFinalized:
		return finalizedStyle.Render("•")
	case pipeline.StateExecuting:
		return executingStyle.Render("⏳")
	case pipeline.StateMaterialized:
		return materializedStyle.Render("◆")
	case pipeline.StateExhausted:
		return exhaustedStyle.Render("✓")
	default:
		return buildingStyle.Render("?")
	}
}
