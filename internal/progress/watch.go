package progress

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Watch drives the dashboard: attached as an interactive Bubbletea program
// when interactive is true (it keeps showing its final frame after events
// closes and returns once the user quits), or, otherwise, folded
// synchronously into a Model until events closes and its final View printed
// to out —
// the same interactive/non-interactive split the teacher's apply command
// makes around its own tea.Program.
func Watch(interactive bool, out io.Writer, names []string, events <-chan StateMsg) error {
	model := NewModel(names, events)

	if !interactive {
		for msg := range events {
			model.ensure(msg.Name)
			model.states[msg.Name] = msg.State
		}
		model.done = true
		_, err := fmt.Fprintln(out, model.View())
		return err
	}

	program := tea.NewProgram(model)
	_, err := program.Run()
	return err
}
