package ecs

import "sort"

// Registry tracks all component stores and supports bulk cleanup on entity release.
// Stores are created on first use of a kind.
type Registry struct {
	stores map[Kind]*ComponentStore
	kinds  []Kind
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[Kind]*ComponentStore, 16),
		kinds:  make([]Kind, 0, 16),
	}
}

// Store returns the store for a kind, creating it if needed.
func (r *Registry) Store(kind Kind) *ComponentStore {
	s, ok := r.stores[kind]
	if !ok {
		s = NewComponentStore(kind)
		r.stores[kind] = s
		r.kinds = append(r.kinds, kind)
		sort.Slice(r.kinds, func(i, j int) bool { return r.kinds[i] < r.kinds[j] })
	}
	return s
}

// Lookup returns the store for a kind without creating it.
func (r *Registry) Lookup(kind Kind) (*ComponentStore, bool) {
	s, ok := r.stores[kind]
	return s, ok
}

// Kinds returns every kind seen so far in sorted order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, k := range r.kinds {
		r.stores[k].Remove(id)
	}
}

// Clear empties every store but keeps them registered.
func (r *Registry) Clear() {
	for _, s := range r.stores {
		s.Clear()
	}
}
