package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/component"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/hex"
)

func bridgedGraph(t *testing.T) (*ecs.World, *authoring.Graph, *Bridge) {
	t.Helper()
	w := ecs.NewWorld()
	g := authoring.NewGraph()
	b := NewBridge(w, g, zap.NewNop())
	g.SetListener(b)
	return w, g, b
}

func TestBridgeSkipsUnreconciledNodes(t *testing.T) {
	w, g, b := bridgedGraph(t)
	stats := authoring.NewUnitStats(component.Unit{Integrity: 5})
	g.Append(authoring.NewEntityNode("a", stats))

	stats.SetDamage(3)
	assert.Zero(t, b.Pushed())
	assert.Zero(t, w.Len())
}

func TestBridgeUpsertsSingleComponent(t *testing.T) {
	w, g, b := bridgedGraph(t)
	stats := authoring.NewUnitStats(component.Unit{Integrity: 5})
	pos := authoring.NewUnitPosition(hex.Zero)
	n := authoring.NewEntityNode("a", stats, pos)
	g.Append(n)
	NewEntitySync(w, ModeEditing, zap.NewNop()).ReconcileGraph(g)

	stats.SetDamage(3)
	assert.Equal(t, 1, b.Pushed())
	u, ok := ecs.Get[component.Unit](w, n.ID())
	require.True(t, ok)
	assert.Equal(t, 3, u.Damage)
	assert.Equal(t, 5, u.Integrity)

	pos.SetQ(2)
	p, ok := ecs.Get[component.UnitPosition](w, n.ID())
	require.True(t, ok)
	assert.Equal(t, hex.Axial(2, 0), p.Position)
	assert.Len(t, w.Components(n.ID()), 2)
}

func TestBridgeRemovesClearedValue(t *testing.T) {
	w, g, _ := bridgedGraph(t)
	ref := authoring.NewPlayerRef("Red")
	n := authoring.NewEntityNode("a", ref)
	g.Append(n)
	NewEntitySync(w, ModeEditing, zap.NewNop()).ReconcileGraph(g)
	_, ok := ecs.Get[component.Player](w, n.ID())
	require.True(t, ok)

	ref.SetPlayerID("")
	_, ok = ecs.Get[component.Player](w, n.ID())
	assert.False(t, ok)
	assert.True(t, w.Alive(n.ID()))
}

func TestBridgeIgnoresReleasedEntity(t *testing.T) {
	w, g, b := bridgedGraph(t)
	stats := authoring.NewUnitStats(component.Unit{})
	n := authoring.NewEntityNode("a", stats)
	g.Append(n)
	NewEntitySync(w, ModeEditing, zap.NewNop()).ReconcileGraph(g)
	w.ReleaseEntity(n.ID())

	stats.SetArmor(4)
	assert.Zero(t, b.Pushed())
	assert.Zero(t, w.Len())
}
