package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: run edit scripts against the authoring side
	PhaseReconcile              // 1: sync authoring snapshot into the world
	PhaseDispatch               // 2: deliver last tick's events
	PhaseUpdate                 // 3: derived world state (occupancy)
	PhaseOutput                 // 4: reports
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseReconcile:
		return "reconcile"
	case PhaseDispatch:
		return "dispatch"
	case PhaseUpdate:
		return "update"
	case PhaseOutput:
		return "output"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
