package ecs

import "sort"

// Kind names a component type. An entity holds at most one component per kind.
type Kind string

// Component is an immutable value attached to an entity.
type Component interface {
	ComponentKind() Kind
}

// ComponentStore holds every value of one kind, keyed by entity.
type ComponentStore struct {
	kind Kind
	data map[EntityID]Component
}

func NewComponentStore(kind Kind) *ComponentStore {
	return &ComponentStore{
		kind: kind,
		data: make(map[EntityID]Component, 64),
	}
}

func (s *ComponentStore) Kind() Kind { return s.kind }

func (s *ComponentStore) Set(id EntityID, c Component) {
	s.data[id] = c
}

func (s *ComponentStore) Get(id EntityID) (Component, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *ComponentStore) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *ComponentStore) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *ComponentStore) Len() int {
	return len(s.data)
}

// IDs returns the entities holding this kind in ascending order.
func (s *ComponentStore) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *ComponentStore) Clear() {
	clear(s.data)
}
