package ecs

// KindOf returns the kind of component type T.
func KindOf[T Component]() Kind {
	var zero T
	return zero.ComponentKind()
}

// Get returns the T component of an entity.
func Get[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	s, ok := w.registry.Lookup(KindOf[T]())
	if !ok {
		return zero, false
	}
	c, ok := s.Get(id)
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}

// Each iterates over entities that have a T component, in id order.
func Each[T Component](w *World, fn func(EntityID, T)) {
	s, ok := w.registry.Lookup(KindOf[T]())
	if !ok {
		return
	}
	for _, id := range s.IDs() {
		c, _ := s.Get(id)
		if v, ok := c.(T); ok {
			fn(id, v)
		}
	}
}

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B Component](w *World, fn func(EntityID, A, B)) {
	sa, ok := w.registry.Lookup(KindOf[A]())
	if !ok {
		return
	}
	sb, ok := w.registry.Lookup(KindOf[B]())
	if !ok {
		return
	}
	ids := sa.IDs()
	other := sb
	if sb.Len() < sa.Len() {
		ids = sb.IDs()
		other = sa
	}
	for _, id := range ids {
		if !other.Has(id) {
			continue
		}
		ca, _ := sa.Get(id)
		cb, _ := sb.Get(id)
		a, okA := ca.(A)
		b, okB := cb.(B)
		if okA && okB {
			fn(id, a, b)
		}
	}
}
