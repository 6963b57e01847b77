package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
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

// EditSource produces the authoring edits for one tick.
// *scripting.Engine implements it.
type EditSource interface {
	RunEdits(ctx scripting.EditContext) []scripting.EditCommand
}

// ScriptSystem applies scripted authoring edits, standing in for the
// designer. Property edits reach the world through the change bridge;
// structural edits are followed by an immediate entity pass.
// Phase 0 (Input).
type ScriptSystem struct {
	source    EditSource
	world     *ecs.World
	graph     *authoring.Graph
	players   *authoring.PlayerList
	grid      *hex.Grid
	reconcile *ReconcileSystem
	bus       *event.Bus
	mode      string
	log       *zap.Logger

	tick    int
	applied int
	failed  int
}

func NewScriptSystem(
	source EditSource,
	world *ecs.World,
	graph *authoring.Graph,
	players *authoring.PlayerList,
	grid *hex.Grid,
	rs *ReconcileSystem,
	bus *event.Bus,
	mode string,
	log *zap.Logger,
) *ScriptSystem {
	return &ScriptSystem{
		source:    source,
		world:     world,
		graph:     graph,
		players:   players,
		grid:      grid,
		reconcile: rs,
		bus:       bus,
		mode:      mode,
		log:       log,
	}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ScriptSystem) Update(_ time.Duration) {
	s.tick++
	cmds := s.source.RunEdits(s.context())
	if len(cmds) == 0 {
		return
	}

	var structural, reset bool
	for _, cmd := range cmds {
		st, err := s.apply(cmd)
		if err != nil {
			s.failed++
			s.log.Warn("edit command skipped",
				zap.String("type", cmd.Type), zap.Int("tick", s.tick), zap.Error(err))
			continue
		}
		s.applied++
		structural = structural || st
		if cmd.Type == scripting.CmdResetWorld {
			reset = true
		}
	}

	if structural {
		s.reconcile.SyncEntities()
	}
	if reset {
		s.reconcile.SyncPlayers(true)
	}
}

// Applied and Failed count edit commands since start.
func (s *ScriptSystem) Applied() int { return s.applied }
func (s *ScriptSystem) Failed() int  { return s.failed }

func (s *ScriptSystem) context() scripting.EditContext {
	ctx := scripting.EditContext{
		Tick:     s.tick,
		Mode:     s.mode,
		Entities: s.world.Len(),
	}
	for _, n := range s.graph.Slots() {
		if n == nil {
			ctx.Slots = append(ctx.Slots, scripting.SlotInfo{Empty: true})
			continue
		}
		info := scripting.SlotInfo{Name: n.Name, Bound: n.ID().IsDefined()}
		for _, d := range n.Components() {
			info.Kinds = append(info.Kinds, string(d.Kind()))
			if p, ok := d.(*authoring.UnitPosition); ok {
				info.HasPos = true
				info.Q, info.R = p.Position().Position.Q, p.Position().Position.R
			}
		}
		ctx.Slots = append(ctx.Slots, info)
	}
	for _, p := range s.players.Entries() {
		if p == nil {
			ctx.Players = append(ctx.Players, "")
			continue
		}
		ctx.Players = append(ctx.Players, p.Name)
	}
	return ctx
}

// apply runs one command and reports whether it changed the graph's
// structure or a node's component set.
func (s *ScriptSystem) apply(cmd scripting.EditCommand) (bool, error) {
	switch cmd.Type {
	case scripting.CmdAddEntity:
		return true, s.insert(cmd.Slot, authoring.NewEntityNode(cmd.Name))
	case scripting.CmdAddEmptySlot:
		return true, s.insert(cmd.Slot, nil)
	case scripting.CmdRemoveEntity:
		_, err := s.graph.Remove(cmd.Slot)
		return true, err
	case scripting.CmdMoveEntity:
		return true, s.graph.Move(cmd.Slot, cmd.To)
	case scripting.CmdAddComponent:
		n, err := s.node(cmd.Slot)
		if err != nil {
			return false, err
		}
		d, err := authoring.NewDescriptor(ecs.Kind(cmd.Kind))
		if err != nil {
			return false, err
		}
		n.AddComponent(d)
		return true, nil
	case scripting.CmdRemoveComponent:
		n, err := s.node(cmd.Slot)
		if err != nil {
			return false, err
		}
		if !n.RemoveComponent(ecs.Kind(cmd.Kind)) {
			return false, fmt.Errorf("slot %d has no %q component", cmd.Slot, cmd.Kind)
		}
		return true, nil
	case scripting.CmdSetUnit:
		return false, s.setUnit(cmd)
	case scripting.CmdSetPosition:
		d, err := descriptorAt[*authoring.UnitPosition](s, cmd.Slot, component.KindUnitPosition)
		if err != nil {
			return false, err
		}
		h := hex.Axial(cmd.Q, cmd.R)
		if s.grid != nil && !s.grid.Contains(h) {
			return false, fmt.Errorf("position %v is off the map", h)
		}
		d.SetHexagon(h)
		return false, nil
	case scripting.CmdSetRotation:
		d, err := descriptorAt[*authoring.UnitPosition](s, cmd.Slot, component.KindUnitPosition)
		if err != nil {
			return false, err
		}
		switch cmd.Field {
		case "body":
			d.SetBodyRotation(float32(cmd.Value))
		case "weapon":
			d.SetWeaponRotation(float32(cmd.Value))
		default:
			return false, fmt.Errorf("unknown rotation %q", cmd.Field)
		}
		return false, nil
	case scripting.CmdSetPlayerRef:
		d, err := descriptorAt[*authoring.PlayerRef](s, cmd.Slot, component.KindPlayer)
		if err != nil {
			return false, err
		}
		d.SetPlayerID(cmd.Player)
		return false, nil
	case scripting.CmdAddPlayer:
		p, err := s.playerData(cmd, s.players.Len())
		if err != nil {
			return false, err
		}
		s.players.Append(p)
		return false, nil
	case scripting.CmdSetPlayer:
		p, err := s.playerData(cmd, cmd.Index)
		if err != nil {
			return false, err
		}
		return false, s.players.Set(cmd.Index, p)
	case scripting.CmdRemovePlayer:
		return false, s.players.Remove(cmd.Index)
	case scripting.CmdResetWorld:
		released := s.world.Len()
		s.world.Reset()
		event.Emit(s.bus, event.WorldReset{Released: released})
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q", cmd.Type)
}

func (s *ScriptSystem) insert(slot int, n *authoring.EntityNode) error {
	if slot < 0 {
		s.graph.Append(n)
		return nil
	}
	return s.graph.Insert(slot, n)
}

func (s *ScriptSystem) node(slot int) (*authoring.EntityNode, error) {
	n, err := s.graph.At(slot)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("slot %d is empty", slot)
	}
	return n, nil
}

func descriptorAt[D authoring.Descriptor](s *ScriptSystem, slot int, kind ecs.Kind) (D, error) {
	var zero D
	n, err := s.node(slot)
	if err != nil {
		return zero, err
	}
	d, ok := n.Component(kind)
	if !ok {
		return zero, fmt.Errorf("slot %d has no %q component", slot, kind)
	}
	typed, ok := d.(D)
	if !ok {
		return zero, fmt.Errorf("slot %d: %q has unexpected type %T", slot, kind, d)
	}
	return typed, nil
}

func (s *ScriptSystem) setUnit(cmd scripting.EditCommand) error {
	d, err := descriptorAt[*authoring.UnitStats](s, cmd.Slot, component.KindUnit)
	if err != nil {
		return err
	}
	v := int(cmd.Value)
	switch cmd.Field {
	case "integrity":
		d.SetIntegrity(v)
	case "damage":
		d.SetDamage(v)
	case "max_attack_range":
		d.SetMaxAttackRange(v)
	case "min_attack_range":
		d.SetMinAttackRange(v)
	case "armor":
		d.SetArmor(v)
	case "mobility":
		d.SetMobility(v)
	default:
		return fmt.Errorf("unknown unit field %q", cmd.Field)
	}
	return nil
}

// playerData builds a fresh entry; entries are shared with the world's
// last committed list and never mutated in place. With neither name nor
// colour it returns a nil placeholder, named and coloured at sync time.
func (s *ScriptSystem) playerData(cmd scripting.EditCommand, i int) (*component.PlayerData, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" && cmd.Color == "" {
		return nil, nil
	}
	p := &component.PlayerData{Name: name}
	if cmd.Color == "" {
		p.Color = reconcile.PaletteColor(i)
		return p, nil
	}
	c, err := colorful.Hex(cmd.Color)
	if err != nil {
		return nil, fmt.Errorf("player color %q: %w", cmd.Color, err)
	}
	p.Color = c
	return p, nil
}
