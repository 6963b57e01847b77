package system

import (
	"time"

	"github.com/hexstrat/hexstrat/internal/component"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	coresys "github.com/hexstrat/hexstrat/internal/core/system"
	"github.com/hexstrat/hexstrat/internal/hex"
)

// OccupancySystem rebuilds the cell -> unit index from UnitPosition
// components. It rebuilds only when the world fingerprint moved.
// Phase 3 (Update).
type OccupancySystem struct {
	world *ecs.World
	grid  *hex.Grid
	index *hex.Index[ecs.EntityID]

	offMap    []ecs.EntityID
	stacked   int
	contested int
	last      uint64
	built     bool
}

func NewOccupancySystem(world *ecs.World, grid *hex.Grid) *OccupancySystem {
	return &OccupancySystem{
		world: world,
		grid:  grid,
		index: hex.NewIndex[ecs.EntityID](),
	}
}

func (s *OccupancySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *OccupancySystem) Update(_ time.Duration) {
	fp := s.world.Fingerprint()
	if s.built && fp == s.last {
		return
	}
	s.last, s.built = fp, true

	s.index.Clear()
	s.offMap = s.offMap[:0]
	ecs.Each(s.world, func(id ecs.EntityID, p component.UnitPosition) {
		if s.grid != nil && !s.grid.Contains(p.Position) {
			s.offMap = append(s.offMap, id)
		}
		s.index.Add(id, p.Position)
	})

	s.stacked = 0
	seen := make(map[hex.Hexagon]bool)
	ecs.Each(s.world, func(_ ecs.EntityID, p component.UnitPosition) {
		if seen[p.Position] {
			return
		}
		seen[p.Position] = true
		if len(s.index.At(p.Position)) > 1 {
			s.stacked++
		}
	})

	owners := make(map[hex.Hexagon]map[string]struct{})
	ecs.Each2(s.world, func(_ ecs.EntityID, p component.UnitPosition, pl component.Player) {
		if pl.PlayerID == "" {
			return
		}
		set, ok := owners[p.Position]
		if !ok {
			set = make(map[string]struct{}, 1)
			owners[p.Position] = set
		}
		set[pl.PlayerID] = struct{}{}
	})
	s.contested = 0
	for _, set := range owners {
		if len(set) > 1 {
			s.contested++
		}
	}
}

// Index returns the current occupancy index.
func (s *OccupancySystem) Index() *hex.Index[ecs.EntityID] { return s.index }

// OffMap returns the positioned entities outside the grid, in id order.
func (s *OccupancySystem) OffMap() []ecs.EntityID {
	out := make([]ecs.EntityID, len(s.offMap))
	copy(out, s.offMap)
	return out
}

// Stacked returns how many cells hold more than one unit.
func (s *OccupancySystem) Stacked() int { return s.stacked }

// Contested returns how many cells hold units owned by different players.
// Units without an owner are not counted.
func (s *OccupancySystem) Contested() int { return s.contested }
