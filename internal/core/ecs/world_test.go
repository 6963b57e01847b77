package ecs

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPos struct{ X, Y int }

func (testPos) ComponentKind() Kind { return "test.pos" }

type testHealth struct{ HP int }

func (testHealth) ComponentKind() Kind { return "test.health" }

func TestEntityIDLayout(t *testing.T) {
	id := NewEntityID(7, 3)
	assert.Equal(t, uint32(7), id.Index())
	assert.Equal(t, uint32(3), id.Generation())
	assert.True(t, id.IsDefined())
	assert.False(t, Undefined.IsDefined())
	assert.Equal(t, "entity(7@3)", id.String())
	assert.Equal(t, "entity(undefined)", Undefined.String())
}

func TestPoolNeverHandsOutUndefined(t *testing.T) {
	p := NewEntityPool()
	first := p.Create()
	assert.Equal(t, NewEntityID(1, 0), first)
	assert.False(t, p.Alive(Undefined))
}

func TestPoolReuseBumpsGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "double destroy is ignored")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a, b)
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a))
	assert.Equal(t, 1, p.Len())
}

func TestWorldReplaceAndSetComponents(t *testing.T) {
	w := NewWorld()
	id := w.AllocateEntity()

	require.True(t, w.ReplaceComponents(id, testPos{1, 2}, nil, testHealth{10}))
	assert.Equal(t, []Component{testHealth{10}, testPos{1, 2}}, w.Components(id))

	// Full replace drops kinds not listed.
	require.True(t, w.ReplaceComponents(id, testPos{3, 4}))
	assert.Equal(t, []Component{testPos{3, 4}}, w.Components(id))

	// Upsert keeps other kinds.
	require.True(t, w.SetComponents(id, testHealth{5}))
	assert.Equal(t, []Component{testHealth{5}, testPos{3, 4}}, w.Components(id))

	h, ok := Get[testHealth](w, id)
	require.True(t, ok)
	assert.Equal(t, 5, h.HP)

	assert.True(t, w.RemoveComponent(id, "test.health"))
	assert.False(t, w.RemoveComponent(id, "test.health"))
	_, ok = Get[testHealth](w, id)
	assert.False(t, ok)
}

func TestWorldIgnoresDeadEntities(t *testing.T) {
	w := NewWorld()
	id := w.AllocateEntity()
	require.True(t, w.ReleaseEntity(id))
	assert.False(t, w.ReleaseEntity(id))
	assert.False(t, w.ReplaceComponents(id, testPos{}))
	assert.False(t, w.SetComponents(id, testPos{}))
	assert.Nil(t, w.Components(id))
	assert.Empty(t, w.EntityIDs())
}

func TestWorldReleaseDropsComponents(t *testing.T) {
	w := NewWorld()
	a := w.AllocateEntity()
	b := w.AllocateEntity()
	w.ReplaceComponents(a, testPos{1, 1})
	w.ReplaceComponents(b, testPos{2, 2})

	w.ReleaseEntity(a)
	assert.Equal(t, []EntityID{b}, w.EntityIDs())
	assert.Equal(t, 1, w.Registry().Store("test.pos").Len())
	assert.Len(t, w.Entities(), 1)
}

func TestEachAndEach2(t *testing.T) {
	w := NewWorld()
	a := w.AllocateEntity()
	b := w.AllocateEntity()
	c := w.AllocateEntity()
	w.ReplaceComponents(a, testPos{1, 0}, testHealth{1})
	w.ReplaceComponents(b, testPos{2, 0})
	w.ReplaceComponents(c, testPos{3, 0}, testHealth{3})

	var seen []EntityID
	Each(w, func(id EntityID, p testPos) {
		seen = append(seen, id)
	})
	assert.Equal(t, []EntityID{a, b, c}, seen)

	sum := 0
	Each2(w, func(id EntityID, p testPos, h testHealth) {
		sum += p.X * h.HP
	})
	assert.Equal(t, 1+9, sum)
}

func TestPlayersReplacedAtomically(t *testing.T) {
	w := NewWorld()
	red := colorful.Color{R: 1}
	w.ReplacePlayers(map[string]colorful.Color{"Red": red, "Blue": {B: 1}})
	assert.Equal(t, []string{"Blue", "Red"}, w.PlayerNames())

	snapshot := w.Players()
	snapshot["Green"] = colorful.Color{G: 1}
	assert.Len(t, w.Players(), 2, "Players returns a copy")

	w.ReplacePlayers(map[string]colorful.Color{"Crimson": red})
	assert.Equal(t, []string{"Crimson"}, w.PlayerNames())
	c, ok := w.Player("Crimson")
	require.True(t, ok)
	assert.Equal(t, red, c)
}

func TestFingerprint(t *testing.T) {
	w := NewWorld()
	empty := w.Fingerprint()

	id := w.AllocateEntity()
	w.ReplaceComponents(id, testPos{1, 2})
	withPos := w.Fingerprint()
	assert.NotEqual(t, empty, withPos)

	w.ReplaceComponents(id, testPos{1, 2})
	assert.Equal(t, withPos, w.Fingerprint(), "same state, same fingerprint")

	w.SetComponents(id, testPos{1, 3})
	assert.NotEqual(t, withPos, w.Fingerprint())

	w.ReplacePlayers(map[string]colorful.Color{"Red": {R: 1}})
	assert.NotEqual(t, withPos, w.Fingerprint())
}

func TestReset(t *testing.T) {
	w := NewWorld()
	a := w.AllocateEntity()
	w.ReplaceComponents(a, testPos{})
	w.ReplacePlayers(map[string]colorful.Color{"Red": {R: 1}})

	w.Reset()
	assert.Zero(t, w.Len())
	assert.False(t, w.Alive(a))
	assert.Empty(t, w.Players())

	b := w.AllocateEntity()
	assert.NotEqual(t, a, b)
	assert.Empty(t, w.Components(b))
}
