package system

import (
	"time"

	"github.com/hexstrat/hexstrat/internal/core/event"
	coresys "github.com/hexstrat/hexstrat/internal/core/system"
)

// EventDispatchSystem swaps the bus buffers and delivers what was emitted
// since the last swap. Phase 2 (Dispatch).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
