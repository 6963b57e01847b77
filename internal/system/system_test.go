package system

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/component"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/core/event"
	coresys "github.com/hexstrat/hexstrat/internal/core/system"
	"github.com/hexstrat/hexstrat/internal/hex"
	"github.com/hexstrat/hexstrat/internal/reconcile"
	"github.com/hexstrat/hexstrat/internal/scripting"
)

// scripted returns fixed commands per tick.
type scripted map[int][]scripting.EditCommand

func (s scripted) RunEdits(ctx scripting.EditContext) []scripting.EditCommand {
	return s[ctx.Tick]
}

type host struct {
	world     *ecs.World
	graph     *authoring.Graph
	players   *authoring.PlayerList
	runner    *coresys.Runner
	reconcile *ReconcileSystem
	script    *ScriptSystem
	occupancy *OccupancySystem
	report    *ReportSystem
}

func newHost(t *testing.T, mode reconcile.Mode, src EditSource, nodes ...*authoring.EntityNode) *host {
	t.Helper()
	log := zap.NewNop()
	grid, err := hex.NewGrid(5, 10)
	require.NoError(t, err)

	h := &host{
		world:   ecs.NewWorld(),
		graph:   authoring.NewGraph(nodes...),
		players: authoring.NewPlayerList(&component.PlayerData{Name: "Red", Color: colorful.Color{R: 1}}, nil),
		runner:  coresys.NewRunner(),
	}
	h.graph.SetListener(reconcile.NewBridge(h.world, h.graph, log))
	bus := event.NewBus()
	h.reconcile = NewReconcileSystem(h.world, h.graph, h.players, mode, bus, log)
	h.script = NewScriptSystem(src, h.world, h.graph, h.players, grid, h.reconcile, bus, mode.String(), log)
	h.occupancy = NewOccupancySystem(h.world, grid)
	h.report = NewReportSystem(h.world, bus, h.occupancy, log)

	h.runner.Register(h.report)
	h.runner.Register(h.occupancy)
	h.runner.Register(NewEventDispatchSystem(bus))
	h.runner.Register(h.reconcile)
	h.runner.Register(h.script)
	return h
}

func (h *host) tick() { h.runner.Tick(200 * time.Millisecond) }

func tank(name string, q, r int) *authoring.EntityNode {
	return authoring.NewEntityNode(name,
		authoring.NewPlayerRef("Red"),
		authoring.NewUnitStats(component.Unit{Integrity: 10}),
		authoring.NewUnitPosition(hex.Axial(q, r)),
		authoring.NewTankStats(),
	)
}

func TestFirstTickPopulatesWorld(t *testing.T) {
	a, b := tank("a", 0, 0), tank("b", 1, 0)
	h := newHost(t, reconcile.ModeEditing, scripted{}, a, nil, b)
	h.tick()

	assert.ElementsMatch(t, []ecs.EntityID{a.ID(), b.ID()}, h.world.EntityIDs())
	assert.Equal(t, []*authoring.EntityNode{a, b}, h.graph.Slots())
	assert.Equal(t, []string{"Player 0", "Red"}, h.world.PlayerNames())

	sum := h.report.Summary()
	assert.Equal(t, 2, sum.Allocated)
	assert.Equal(t, 1, sum.Changes)

	// Nothing moves on a quiet tick.
	h.tick()
	assert.Equal(t, 1, h.report.Summary().Changes)
	assert.Equal(t, 2, h.reconcile.Passes())
}

func TestScriptedStructuralEditReconcilesAtOnce(t *testing.T) {
	src := scripted{1: {
		{Type: scripting.CmdAddEntity, Name: "scout", Slot: -1},
		{Type: scripting.CmdAddComponent, Slot: 1, Kind: string(component.KindUnitPosition)},
		{Type: scripting.CmdSetPosition, Slot: 1, Q: 1, R: -1},
		{Type: scripting.CmdAddComponent, Slot: 1, Kind: string(component.KindArtillery)},
	}}
	a := tank("a", 0, 0)
	h := newHost(t, reconcile.ModeRuntime, src, a)
	h.tick()

	require.Equal(t, 2, h.graph.Len())
	scout, err := h.graph.At(1)
	require.NoError(t, err)
	require.True(t, h.world.Alive(scout.ID()))

	pos, ok := ecs.Get[component.UnitPosition](h.world, scout.ID())
	require.True(t, ok)
	assert.Equal(t, hex.Axial(1, -1), pos.Position)
	_, ok = ecs.Get[component.Artillery](h.world, scout.ID())
	assert.True(t, ok)

	assert.Equal(t, []ecs.EntityID{scout.ID()}, h.occupancy.Index().At(hex.Axial(1, -1)))
	assert.Equal(t, 4, h.script.Applied())
}

func TestRuntimePropertyEditUsesBridge(t *testing.T) {
	src := scripted{2: {
		{Type: scripting.CmdSetUnit, Slot: 0, Field: "damage", Value: 7},
		{Type: scripting.CmdSetRotation, Slot: 0, Field: "weapon", Value: 90},
	}}
	a := tank("a", 0, 0)
	h := newHost(t, reconcile.ModeRuntime, src, a)
	h.tick()
	require.Equal(t, 1, h.reconcile.Passes())

	h.tick()
	assert.Equal(t, 1, h.reconcile.Passes(), "property edits need no entity pass")
	u, _ := ecs.Get[component.Unit](h.world, a.ID())
	assert.Equal(t, 7, u.Damage)
	p, _ := ecs.Get[component.UnitPosition](h.world, a.ID())
	assert.Equal(t, float32(90), p.WeaponRotation)
}

func TestRuntimeDirectNodeEditReconciles(t *testing.T) {
	a := tank("a", 0, 0)
	h := newHost(t, reconcile.ModeRuntime, scripted{}, a)
	h.tick()
	h.tick()
	require.Equal(t, 1, h.reconcile.Passes())

	a.AddComponent(authoring.NewArtilleryStats())
	h.tick()
	assert.Equal(t, 2, h.reconcile.Passes())
	_, ok := ecs.Get[component.Artillery](h.world, a.ID())
	assert.True(t, ok)

	require.True(t, a.RemoveComponent(component.KindTank))
	h.tick()
	assert.Equal(t, 3, h.reconcile.Passes())
	_, ok = ecs.Get[component.Tank](h.world, a.ID())
	assert.False(t, ok)

	h.tick()
	assert.Equal(t, 3, h.reconcile.Passes())
}

func TestDuplicatePlayerRejectedOnce(t *testing.T) {
	src := scripted{2: {{Type: scripting.CmdAddPlayer, Name: " Red ", Slot: -1, Index: -1}}}
	h := newHost(t, reconcile.ModeEditing, src, tank("a", 0, 0))
	h.tick()
	before := h.world.Players()

	h.tick()
	h.tick()
	assert.Equal(t, before, h.world.Players())
	assert.Equal(t, 1, h.report.Summary().Rejected)
	assert.Equal(t, 3, h.players.Len())
}

func TestPlayerEditsReachWorld(t *testing.T) {
	src := scripted{2: {
		{Type: scripting.CmdSetPlayer, Index: 1, Name: "Blue", Color: "#0000ff"},
		{Type: scripting.CmdAddPlayer, Name: "Green", Index: -1},
		{Type: scripting.CmdRemovePlayer, Index: 0},
	}}
	h := newHost(t, reconcile.ModeEditing, src)
	h.tick()
	h.tick()

	assert.Equal(t, []string{"Blue", "Green"}, h.world.PlayerNames())
	blue, ok := h.world.Player("Blue")
	require.True(t, ok)
	assert.Equal(t, "#0000ff", blue.Hex())
}

func TestResetWorldRebuildsFromGraph(t *testing.T) {
	src := scripted{2: {{Type: scripting.CmdResetWorld}}}
	a, b := tank("a", 0, 0), tank("b", 0, 1)
	h := newHost(t, reconcile.ModeEditing, src, a, b)
	h.tick()
	oldA := a.ID()
	names := h.world.PlayerNames()

	h.tick()
	assert.Equal(t, 2, h.world.Len())
	assert.NotEqual(t, oldA, a.ID())
	assert.True(t, h.world.Alive(a.ID()))
	assert.Equal(t, names, h.world.PlayerNames())
	assert.Equal(t, 1, h.report.Summary().Resets)
}

func TestBadCommandsAreSkipped(t *testing.T) {
	src := scripted{1: {
		{Type: "summon_dragon"},
		{Type: scripting.CmdRemoveEntity, Slot: 9},
		{Type: scripting.CmdSetPosition, Slot: 0, Q: 40},
		{Type: scripting.CmdSetUnit, Slot: 0, Field: "luck", Value: 1},
		{Type: scripting.CmdAddPlayer, Name: "X", Color: "blue", Index: -1},
		{Type: scripting.CmdSetPlayerRef, Slot: 0, Player: "Red"},
	}}
	h := newHost(t, reconcile.ModeEditing, src, tank("a", 0, 0))
	h.tick()
	assert.Equal(t, 5, h.script.Failed())
	assert.Equal(t, 1, h.script.Applied())
	assert.Equal(t, 1, h.world.Len())
}

func TestOccupancyStackedAndOffMap(t *testing.T) {
	far := tank("far", 9, 0)
	h := newHost(t, reconcile.ModeEditing, scripted{}, tank("a", 1, 1), tank("b", 1, 1), far)
	h.tick()

	assert.Equal(t, 1, h.occupancy.Stacked())
	assert.Equal(t, []ecs.EntityID{far.ID()}, h.occupancy.OffMap())
	assert.Len(t, h.occupancy.Index().At(hex.Axial(1, 1)), 2)
	assert.Equal(t, 3, h.occupancy.Index().Len())
}

func TestScriptedPlayersShareSyncPalette(t *testing.T) {
	src := scripted{2: {
		{Type: scripting.CmdAddPlayer, Index: -1},
		{Type: scripting.CmdAddPlayer, Name: "Green", Index: -1},
	}}
	h := newHost(t, reconcile.ModeEditing, src)
	h.tick()
	h.tick()

	entries := h.players.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "Player 1", entries[2].Name)
	assert.Equal(t, reconcile.PaletteColor(2), entries[2].Color)

	placeholder, ok := h.world.Player("Player 1")
	require.True(t, ok)
	assert.Equal(t, reconcile.PaletteColor(2), placeholder)
	green, ok := h.world.Player("Green")
	require.True(t, ok)
	assert.Equal(t, reconcile.PaletteColor(3), green)
}

func TestOccupancyContestedCells(t *testing.T) {
	blue := authoring.NewEntityNode("blue",
		authoring.NewPlayerRef("Blue"),
		authoring.NewUnitPosition(hex.Axial(1, 1)),
	)
	loose := authoring.NewEntityNode("loose", authoring.NewUnitPosition(hex.Axial(2, 0)))
	h := newHost(t, reconcile.ModeEditing, scripted{},
		tank("a", 1, 1), blue, tank("b", 2, 0), loose, tank("c", 0, 2), tank("d", 0, 2))
	h.tick()

	assert.Equal(t, 3, h.occupancy.Stacked())
	assert.Equal(t, 1, h.occupancy.Contested())
}
