// Package progress is a small live dashboard for the `relflow watch`
// subcommand: one row per tracked pipeline name, updated
// as each pipeline transitions through its lifecycle states. It is purely a
// diagnostic viewer wired to pipeline.Pipeline.WithObserver — it has zero
// influence on planning or execution, the same non-contractual role
// spec.md §9 gives verbose tracing.
package progress

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marachen/relflow/internal/pipeline"
)

// StateMsg reports that a named pipeline transitioned to a new lifecycle
// state. It is the bubbletea message this package's model reacts to.
type StateMsg struct {
	Name  string
	State pipeline.State
}

// doneMsg signals the event source has closed; the dashboard stops
// listening but keeps rendering its final frame until the user quits.
type doneMsg struct{}

// Model is the Bubbletea state for the watch dashboard: one row per
// pipeline name, in the order the names were first seen.
type Model struct {
	events <-chan StateMsg

	states map[string]pipeline.State
	order  []string

	done    bool
	stopped bool
}

// NewModel constructs a dashboard that will track every name in names (in
// that order) plus any further name it first sees on events, reading state
// transitions from events until the channel is closed.
func NewModel(names []string, events <-chan StateMsg) Model {
	m := Model{
		events: events,
		states: make(map[string]pipeline.State, len(names)),
		order:  append([]string(nil), names...),
	}
	for _, name := range names {
		m.states[name] = pipeline.StateBuilding
	}
	return m
}

// Init starts listening on the event channel.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan StateMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return msg
	}
}

func (m *Model) ensure(name string) {
	if _, exists := m.states[name]; !exists {
		m.states[name] = pipeline.StateBuilding
		m.order = append(m.order, name)
	}
}

// Done reports whether the event source has closed. A closed event source
// is the only reliable "the run is over" signal: an unshared pipeline's
// last observed state is Executing, not Exhausted, since it streams
// directly rather than materializing.
func (m Model) Done() bool {
	return m.done
}
