package reconcile

import (
	"go.uber.org/zap"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
)

// Stats summarises one reconciliation pass.
type Stats struct {
	Kept       int // nodes whose id survived
	Allocated  int // nodes given a fresh id
	Released   int // world entities no longer referenced
	Skipped    int // empty or repeated slots
	Stale      int // ids the world did not know
	Duplicates int // ids already claimed by an earlier slot
}

// Changed reports whether the pass created or destroyed any entity.
func (s Stats) Changed() bool { return s.Allocated > 0 || s.Released > 0 }

// EntitySync reconciles ordered entity nodes against the world's entity set.
type EntitySync struct {
	world *ecs.World
	mode  Mode
	log   *zap.Logger
}

func NewEntitySync(world *ecs.World, mode Mode, log *zap.Logger) *EntitySync {
	return &EntitySync{world: world, mode: mode, log: log}
}

func (s *EntitySync) Mode() Mode { return s.mode }

// Reconcile makes the world's entities match nodes exactly: every returned
// node has a live id, and every live id belongs to exactly one returned node.
// Empty slots are dropped from the result.
func (s *EntitySync) Reconcile(nodes []*authoring.EntityNode) ([]*authoring.EntityNode, Stats) {
	var st Stats

	current := s.world.EntityIDs()
	pending := make(map[ecs.EntityID]struct{}, len(current))
	for _, id := range current {
		pending[id] = struct{}{}
	}

	// An empty world means any stored id predates a reset.
	if len(pending) == 0 {
		for _, n := range nodes {
			if n != nil {
				n.Unbind()
			}
		}
	}

	out := make([]*authoring.EntityNode, 0, len(nodes))
	seen := make(map[*authoring.EntityNode]struct{}, len(nodes))
	for _, n := range nodes {
		if n == nil {
			st.Skipped++
			continue
		}
		if _, dup := seen[n]; dup {
			st.Skipped++
			continue
		}
		seen[n] = struct{}{}

		id := n.ID()
		if _, ok := pending[id]; ok && id.IsDefined() {
			delete(pending, id)
			st.Kept++
		} else {
			if id.IsDefined() {
				if s.world.Alive(id) {
					st.Duplicates++
					s.log.Debug("entity id claimed twice, reallocating",
						zap.Stringer("entity", id), zap.String("node", n.Name))
				} else {
					st.Stale++
					s.log.Debug("stale entity id, reallocating",
						zap.Stringer("entity", id), zap.String("node", n.Name))
				}
			}
			id = s.world.AllocateEntity()
			n.Bind(id)
			st.Allocated++
		}
		s.world.ReplaceComponents(id, n.Values()...)
		out = append(out, n)
	}

	for _, id := range current {
		if _, ok := pending[id]; !ok {
			continue
		}
		s.world.ReleaseEntity(id)
		st.Released++
	}

	if st.Changed() {
		s.log.Debug("entities reconciled",
			zap.Int("kept", st.Kept),
			zap.Int("allocated", st.Allocated),
			zap.Int("released", st.Released))
	}
	return out, st
}

// ReconcileGraph reconciles a graph's slots. In editing mode the result
// becomes the graph's new snapshot; in runtime mode only the dirty flag is
// cleared.
func (s *EntitySync) ReconcileGraph(g *authoring.Graph) Stats {
	out, st := s.Reconcile(g.Slots())
	if s.mode == ModeEditing {
		g.Commit(out)
	} else {
		g.MarkClean()
	}
	return st
}

// Detach releases every id held by the graph's nodes and unbinds them,
// as when the graph is moved to another world.
func (s *EntitySync) Detach(g *authoring.Graph) int {
	released := 0
	for _, n := range g.Nodes() {
		if n.ID().IsDefined() && s.world.ReleaseEntity(n.ID()) {
			released++
		}
		n.Unbind()
	}
	return released
}
