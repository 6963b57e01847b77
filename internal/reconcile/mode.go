// Package reconcile keeps an authoring graph and player list synchronized
// with an ECS world.
package reconcile

import "fmt"

// Mode selects whether reconciliation persists its result into the graph.
type Mode int

const (
	// ModeEditing commits the reconciled slot list back to the graph and
	// reconciles on every tick.
	ModeEditing Mode = iota
	// ModeRuntime binds ids and pushes components but leaves the graph's
	// slot list untouched; passes run only after structural edits.
	ModeRuntime
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeRuntime:
		return "runtime"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "editing", "":
		return ModeEditing, nil
	case "runtime":
		return ModeRuntime, nil
	}
	return 0, fmt.Errorf("unknown reconcile mode %q", s)
}
