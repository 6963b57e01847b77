// Package authoring holds the declarative scene graph edited by designers:
// entity nodes with component descriptors, and the player list.
package authoring

import (
	"github.com/google/uuid"

	"github.com/hexstrat/hexstrat/internal/core/ecs"
)

// EntityNode is one authored entity. Its world id is assigned lazily by
// reconciliation and is Undefined until then.
type EntityNode struct {
	Key  uuid.UUID
	Name string

	id         ecs.EntityID
	components []Descriptor
	listener   ChangeListener
	graph      *Graph // non-owning; the graph whose slot holds the node
}

func NewEntityNode(name string, comps ...Descriptor) *EntityNode {
	n := &EntityNode{Key: uuid.New(), Name: name}
	n.SetComponents(comps...)
	return n
}

func (n *EntityNode) ID() ecs.EntityID { return n.id }

// Bind records the world id assigned to the node.
func (n *EntityNode) Bind(id ecs.EntityID) { n.id = id }

// Unbind forgets the node's world id.
func (n *EntityNode) Unbind() { n.id = ecs.Undefined }

// Components returns the node's descriptors in authoring order.
func (n *EntityNode) Components() []Descriptor {
	out := make([]Descriptor, len(n.components))
	copy(out, n.components)
	return out
}

// Component returns the first descriptor of a kind.
func (n *EntityNode) Component(kind ecs.Kind) (Descriptor, bool) {
	for _, d := range n.components {
		if d.Kind() == kind {
			return d, true
		}
	}
	return nil, false
}

// SetComponents replaces the descriptor list. Nil entries are dropped.
func (n *EntityNode) SetComponents(comps ...Descriptor) {
	for _, d := range n.components {
		d.attach(uuid.Nil, nil)
	}
	next := make([]Descriptor, 0, len(comps))
	for _, d := range comps {
		if d == nil {
			continue
		}
		d.attach(n.Key, n.listener)
		next = append(next, d)
	}
	n.components = next
	n.edited()
}

// AddComponent appends a descriptor. Like RemoveComponent it marks the
// holding graph dirty, so the next runtime tick runs an entity pass.
func (n *EntityNode) AddComponent(d Descriptor) {
	if d == nil {
		return
	}
	d.attach(n.Key, n.listener)
	n.components = append(n.components, d)
	n.edited()
}

// RemoveComponent drops every descriptor of a kind.
func (n *EntityNode) RemoveComponent(kind ecs.Kind) bool {
	kept := n.components[:0]
	removed := false
	for _, d := range n.components {
		if d.Kind() == kind {
			d.attach(uuid.Nil, nil)
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	n.components = kept
	if removed {
		n.edited()
	}
	return removed
}

// Values returns the component values to push to the world. Descriptors
// with no value are left out.
func (n *EntityNode) Values() []ecs.Component {
	out := make([]ecs.Component, 0, len(n.components))
	for _, d := range n.components {
		if v := d.Value(); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (n *EntityNode) edited() {
	if n.graph != nil {
		n.graph.nodeEdited(n)
	}
}

func (n *EntityNode) setListener(l ChangeListener) {
	n.listener = l
	for _, d := range n.components {
		d.attach(n.Key, l)
	}
}
