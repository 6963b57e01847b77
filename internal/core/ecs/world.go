package ecs

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// World is the top-level ECS container. It owns the entity pool, the
// component registry and the player colour map mirrored from authoring.
// Accessed only from the tick loop goroutine.
type World struct {
	pool     *EntityPool
	registry *Registry
	players  map[string]colorful.Color
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		players:  make(map[string]colorful.Color),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// AllocateEntity creates a new entity with no components.
func (w *World) AllocateEntity() EntityID {
	return w.pool.Create()
}

// ReleaseEntity destroys an entity and drops all of its components.
// Returns false if the id was not alive.
func (w *World) ReleaseEntity(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return w.pool.Destroy(id)
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.pool.Len()
}

// EntityIDs returns every live entity in ascending index order.
func (w *World) EntityIDs() []EntityID {
	ids := make([]EntityID, 0, w.pool.Len())
	w.pool.Each(func(id EntityID) {
		ids = append(ids, id)
	})
	return ids
}

// ReplaceComponents swaps the entity's whole component set for comps.
// Nil values are skipped; for repeated kinds the last value wins.
func (w *World) ReplaceComponents(id EntityID, comps ...Component) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	w.set(id, comps)
	return true
}

// SetComponents upserts comps without touching the entity's other kinds.
func (w *World) SetComponents(id EntityID, comps ...Component) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.set(id, comps)
	return true
}

// RemoveComponent drops one kind from an entity.
func (w *World) RemoveComponent(id EntityID, kind Kind) bool {
	if !w.pool.Alive(id) {
		return false
	}
	s, ok := w.registry.Lookup(kind)
	if !ok || !s.Has(id) {
		return false
	}
	s.Remove(id)
	return true
}

func (w *World) set(id EntityID, comps []Component) {
	for _, c := range comps {
		if c == nil {
			continue
		}
		w.registry.Store(c.ComponentKind()).Set(id, c)
	}
}

// Components returns an entity's components ordered by kind.
func (w *World) Components(id EntityID) []Component {
	if !w.pool.Alive(id) {
		return nil
	}
	var out []Component
	for _, k := range w.registry.kinds {
		if c, ok := w.registry.stores[k].Get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// Entities returns a snapshot of every live entity and its components.
func (w *World) Entities() map[EntityID][]Component {
	out := make(map[EntityID][]Component, w.pool.Len())
	w.pool.Each(func(id EntityID) {
		out[id] = w.Components(id)
	})
	return out
}

// ReplacePlayers installs a new player map as a single step.
func (w *World) ReplacePlayers(players map[string]colorful.Color) {
	next := make(map[string]colorful.Color, len(players))
	for name, c := range players {
		next[name] = c
	}
	w.players = next
}

// Players returns a copy of the player map.
func (w *World) Players() map[string]colorful.Color {
	out := make(map[string]colorful.Color, len(w.players))
	for name, c := range w.players {
		out[name] = c
	}
	return out
}

// Player returns one player's colour.
func (w *World) Player(name string) (colorful.Color, bool) {
	c, ok := w.players[name]
	return c, ok
}

// PlayerNames returns the player names in sorted order.
func (w *World) PlayerNames() []string {
	names := make([]string, 0, len(w.players))
	for name := range w.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops every entity, component and player. Ids handed out before
// the reset are no longer alive.
func (w *World) Reset() {
	w.pool.Each(func(id EntityID) {
		w.pool.Destroy(id)
	})
	w.registry.Clear()
	w.players = make(map[string]colorful.Color)
}
