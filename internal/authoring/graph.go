package authoring

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrSlotRange reports a slot index outside the graph.
var ErrSlotRange = errors.New("authoring: slot out of range")

// Graph is the ordered list of entity slots of a scene. A slot may be nil
// while the designer has added it but not filled it in.
// Accessed only from the tick loop goroutine.
type Graph struct {
	slots    []*EntityNode
	byKey    map[uuid.UUID]*EntityNode
	listener ChangeListener
	dirty    bool
}

func NewGraph(slots ...*EntityNode) *Graph {
	g := &Graph{}
	g.SetSlots(slots)
	return g
}

// SetListener attaches l to every current and future node's descriptors.
func (g *Graph) SetListener(l ChangeListener) {
	g.listener = l
	for _, n := range g.slots {
		if n != nil {
			n.setListener(l)
		}
	}
}

// Slots returns a copy of the slot list, empty slots included.
func (g *Graph) Slots() []*EntityNode {
	out := make([]*EntityNode, len(g.slots))
	copy(out, g.slots)
	return out
}

// Nodes returns the non-empty slots in order.
func (g *Graph) Nodes() []*EntityNode {
	out := make([]*EntityNode, 0, len(g.slots))
	for _, n := range g.slots {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) Len() int { return len(g.slots) }

// At returns the node in a slot; nil for an empty slot.
func (g *Graph) At(i int) (*EntityNode, error) {
	if i < 0 || i >= len(g.slots) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlotRange, i, len(g.slots))
	}
	return g.slots[i], nil
}

// Node looks a node up by key.
func (g *Graph) Node(key uuid.UUID) (*EntityNode, bool) {
	n, ok := g.byKey[key]
	return n, ok
}

// Append adds a slot at the end and returns its index. n may be nil.
func (g *Graph) Append(n *EntityNode) int {
	g.slots = append(g.slots, n)
	g.adopt(n)
	g.dirty = true
	return len(g.slots) - 1
}

// Insert adds a slot before index i.
func (g *Graph) Insert(i int, n *EntityNode) error {
	if i < 0 || i > len(g.slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotRange, i, len(g.slots))
	}
	g.slots = append(g.slots, nil)
	copy(g.slots[i+1:], g.slots[i:])
	g.slots[i] = n
	g.adopt(n)
	g.dirty = true
	return nil
}

// Remove deletes slot i and returns what it held.
func (g *Graph) Remove(i int) (*EntityNode, error) {
	if i < 0 || i >= len(g.slots) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlotRange, i, len(g.slots))
	}
	n := g.slots[i]
	g.slots = append(g.slots[:i], g.slots[i+1:]...)
	g.reindex()
	if n != nil {
		if _, still := g.byKey[n.Key]; !still {
			n.setListener(nil)
			n.graph = nil
		}
	}
	g.dirty = true
	return n, nil
}

// Move relocates slot from to index to, shifting the slots between.
func (g *Graph) Move(from, to int) error {
	if from < 0 || from >= len(g.slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotRange, from, len(g.slots))
	}
	if to < 0 || to >= len(g.slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotRange, to, len(g.slots))
	}
	if from == to {
		return nil
	}
	n := g.slots[from]
	g.slots = append(g.slots[:from], g.slots[from+1:]...)
	g.slots = append(g.slots, nil)
	copy(g.slots[to+1:], g.slots[to:])
	g.slots[to] = n
	g.dirty = true
	return nil
}

// SetSlots replaces the whole slot list, as an editor does when the
// designer pastes or reorders many slots at once.
func (g *Graph) SetSlots(slots []*EntityNode) {
	g.slots = make([]*EntityNode, len(slots))
	copy(g.slots, slots)
	g.reindex()
	for _, n := range g.slots {
		if n != nil {
			n.setListener(g.listener)
			n.graph = g
		}
	}
	g.dirty = true
}

// Commit installs a reconciled slot list as the graph's snapshot.
func (g *Graph) Commit(slots []*EntityNode) {
	g.SetSlots(slots)
	g.dirty = false
}

// Dirty reports whether structural edits happened since the last reconcile:
// slot changes, or a slotted node gaining or losing descriptors.
func (g *Graph) Dirty() bool { return g.dirty }

func (g *Graph) MarkClean() { g.dirty = false }

func (g *Graph) adopt(n *EntityNode) {
	if n == nil {
		return
	}
	if g.byKey == nil {
		g.byKey = make(map[uuid.UUID]*EntityNode)
	}
	g.byKey[n.Key] = n
	n.setListener(g.listener)
	n.graph = g
}

// nodeEdited is called by a node whose descriptor list changed. A node that
// was dropped from the slots but still points here is ignored.
func (g *Graph) nodeEdited(n *EntityNode) {
	if g.byKey[n.Key] == n {
		g.dirty = true
	}
}

func (g *Graph) reindex() {
	g.byKey = make(map[uuid.UUID]*EntityNode, len(g.slots))
	for _, n := range g.slots {
		if n != nil {
			g.byKey[n.Key] = n
		}
	}
}
