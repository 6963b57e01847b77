package system

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/core/event"
	coresys "github.com/hexstrat/hexstrat/internal/core/system"
	"github.com/hexstrat/hexstrat/internal/reconcile"
)

// ReconcileSystem keeps the world in step with the authoring graph and the
// player list. Phase 1 (Reconcile).
//
// Editing mode reconciles the graph every tick. Runtime mode only when the
// graph has structural edits pending. Players are reconciled whenever the
// list changed.
type ReconcileSystem struct {
	world      *ecs.World
	graph      *authoring.Graph
	players    *authoring.PlayerList
	entities   *reconcile.EntitySync
	playerSync *reconcile.PlayerSync
	bus        *event.Bus
	log        *zap.Logger

	passes int
}

func NewReconcileSystem(
	world *ecs.World,
	graph *authoring.Graph,
	players *authoring.PlayerList,
	mode reconcile.Mode,
	bus *event.Bus,
	log *zap.Logger,
) *ReconcileSystem {
	return &ReconcileSystem{
		world:      world,
		graph:      graph,
		players:    players,
		entities:   reconcile.NewEntitySync(world, mode, log),
		playerSync: reconcile.NewPlayerSync(world, log),
		bus:        bus,
		log:        log,
	}
}

func (s *ReconcileSystem) Phase() coresys.Phase { return coresys.PhaseReconcile }

func (s *ReconcileSystem) Update(_ time.Duration) {
	if s.entities.Mode() == reconcile.ModeEditing || s.graph.Dirty() {
		s.SyncEntities()
	}
	s.SyncPlayers(false)
}

// Passes returns how many entity passes have run.
func (s *ReconcileSystem) Passes() int { return s.passes }

// SyncEntities runs one entity pass now.
func (s *ReconcileSystem) SyncEntities() reconcile.Stats {
	st := s.entities.ReconcileGraph(s.graph)
	s.passes++
	if st.Changed() {
		event.Emit(s.bus, event.EntitiesReconciled{
			Kept:      st.Kept,
			Allocated: st.Allocated,
			Released:  st.Released,
			Skipped:   st.Skipped,
		})
	}
	if st.Stale > 0 || st.Duplicates > 0 {
		s.log.Info("entity ids reassigned",
			zap.Int("stale", st.Stale), zap.Int("duplicates", st.Duplicates))
	}
	return st
}

// SyncPlayers reconciles the player list when it changed, or always when
// force is set (after the world's map was cleared).
func (s *ReconcileSystem) SyncPlayers(force bool) {
	if !force && !s.players.Dirty() {
		return
	}
	err := s.playerSync.ReconcileList(s.players)
	var dup *reconcile.DuplicateNameError
	switch {
	case err == nil:
		event.Emit(s.bus, event.PlayersReplaced{Names: s.world.PlayerNames()})
	case errors.As(err, &dup):
		// The list stays as authored; retry on its next edit.
		s.players.MarkClean()
		event.Emit(s.bus, event.PlayersRejected{Name: dup.Name, First: dup.First, Second: dup.Second})
	default:
		s.log.Error("player reconcile failed", zap.Error(err))
	}
}

// Detach releases every entity held by the graph.
func (s *ReconcileSystem) Detach() int {
	return s.entities.Detach(s.graph)
}
