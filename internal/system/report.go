package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/core/event"
	coresys "github.com/hexstrat/hexstrat/internal/core/system"
)

// ReportSummary is the running tally the report system keeps.
type ReportSummary struct {
	Changes   int // ticks on which the world fingerprint moved
	Allocated int
	Released  int
	Rejected  int // refused player updates
	Resets    int
}

// ReportSystem logs reconciliation events and world changes.
// Phase 4 (Output).
type ReportSystem struct {
	world     *ecs.World
	occupancy *OccupancySystem
	log       *zap.Logger

	last    uint64
	summary ReportSummary
}

func NewReportSystem(world *ecs.World, bus *event.Bus, occupancy *OccupancySystem, log *zap.Logger) *ReportSystem {
	s := &ReportSystem{world: world, occupancy: occupancy, log: log, last: world.Fingerprint()}

	event.Subscribe(bus, func(e event.EntitiesReconciled) {
		s.summary.Allocated += e.Allocated
		s.summary.Released += e.Released
		s.log.Info("entities reconciled",
			zap.Int("kept", e.Kept),
			zap.Int("allocated", e.Allocated),
			zap.Int("released", e.Released),
			zap.Int("empty_slots", e.Skipped))
	})
	event.Subscribe(bus, func(e event.PlayersReplaced) {
		s.log.Info("players replaced", zap.Strings("names", e.Names))
	})
	event.Subscribe(bus, func(e event.PlayersRejected) {
		s.summary.Rejected++
		s.log.Warn("duplicate player name",
			zap.String("name", e.Name), zap.Int("first", e.First), zap.Int("second", e.Second))
	})
	event.Subscribe(bus, func(e event.WorldReset) {
		s.summary.Resets++
		s.log.Info("world reset", zap.Int("released", e.Released))
	})
	return s
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ReportSystem) Update(_ time.Duration) {
	fp := s.world.Fingerprint()
	if fp == s.last {
		return
	}
	s.last = fp
	s.summary.Changes++

	fields := []zap.Field{
		zap.Uint64("fingerprint", fp),
		zap.Int("entities", s.world.Len()),
		zap.Int("players", len(s.world.PlayerNames())),
	}
	if s.occupancy != nil {
		fields = append(fields,
			zap.Int("stacked_cells", s.occupancy.Stacked()),
			zap.Int("contested_cells", s.occupancy.Contested()),
			zap.Int("off_map", len(s.occupancy.OffMap())))
	}
	s.log.Debug("world changed", fields...)
}

func (s *ReportSystem) Summary() ReportSummary { return s.summary }
