package reconcile

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
)

// NodeResolver finds an authoring node by key. *authoring.Graph implements it.
type NodeResolver interface {
	Node(key uuid.UUID) (*authoring.EntityNode, bool)
}

// Bridge writes a single descriptor's new value through to the world as
// soon as one of its properties changes, without waiting for the next pass.
type Bridge struct {
	world *ecs.World
	nodes NodeResolver
	log   *zap.Logger

	pushed int
}

func NewBridge(world *ecs.World, nodes NodeResolver, log *zap.Logger) *Bridge {
	return &Bridge{world: world, nodes: nodes, log: log}
}

// OnComponentPropertyChanged upserts the descriptor's value on its owning
// entity. Nodes that are unknown or not yet reconciled are skipped; the
// next full pass picks the value up.
func (b *Bridge) OnComponentPropertyChanged(d authoring.Descriptor) {
	n, ok := b.nodes.Node(d.Owner())
	if !ok {
		return
	}
	id := n.ID()
	if !id.IsDefined() || !b.world.Alive(id) {
		return
	}
	if v := d.Value(); v != nil {
		b.world.SetComponents(id, v)
	} else {
		b.world.RemoveComponent(id, d.Kind())
	}
	b.pushed++
	b.log.Debug("component pushed",
		zap.Stringer("entity", id), zap.String("kind", string(d.Kind())))
}

// Pushed returns how many writes reached the world.
func (b *Bridge) Pushed() int { return b.pushed }
