package progress

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles bubbletea messages and advances the dashboard's state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.ensure(msg.Name)
		m.states[msg.Name] = msg.State
		return m, waitForEvent(m.events)
	case doneMsg:
		m.done = true
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.stopped = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.stopped = true
		return m, nil
	}
	return m, nil
}
