package authoring

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hexstrat/hexstrat/internal/component"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/hex"
)

// ChangeListener receives single-property mutations of attached descriptors.
type ChangeListener interface {
	OnComponentPropertyChanged(d Descriptor)
}

// Descriptor declares one component of an entity node.
// Value returns nil when the descriptor has nothing to contribute.
type Descriptor interface {
	Kind() ecs.Kind
	Value() ecs.Component
	// Owner is the key of the node the descriptor is attached to, or uuid.Nil.
	Owner() uuid.UUID

	attach(owner uuid.UUID, l ChangeListener)
}

// attachment is the non-owning link from a descriptor back to its node.
type attachment struct {
	owner    uuid.UUID
	listener ChangeListener
}

func (a *attachment) Owner() uuid.UUID { return a.owner }

func (a *attachment) attach(owner uuid.UUID, l ChangeListener) {
	a.owner = owner
	a.listener = l
}

func (a *attachment) changed(d Descriptor) {
	if a.listener != nil {
		a.listener.OnComponentPropertyChanged(d)
	}
}

// PlayerRef assigns the entity to a player by name.
type PlayerRef struct {
	attachment
	playerID string
}

func NewPlayerRef(playerID string) *PlayerRef {
	return &PlayerRef{playerID: playerID}
}

func (d *PlayerRef) Kind() ecs.Kind   { return component.KindPlayer }
func (d *PlayerRef) PlayerID() string { return d.playerID }

func (d *PlayerRef) Value() ecs.Component {
	if d.playerID == "" {
		return nil
	}
	return component.Player{PlayerID: d.playerID}
}

func (d *PlayerRef) SetPlayerID(id string) {
	if d.playerID == id {
		return
	}
	d.playerID = id
	d.changed(d)
}

// ArtilleryStats marks the entity as artillery.
type ArtilleryStats struct {
	attachment
}

func NewArtilleryStats() *ArtilleryStats { return &ArtilleryStats{} }

func (d *ArtilleryStats) Kind() ecs.Kind       { return component.KindArtillery }
func (d *ArtilleryStats) Value() ecs.Component { return component.Artillery{} }

// TankStats marks the entity as a tank.
type TankStats struct {
	attachment
}

func NewTankStats() *TankStats { return &TankStats{} }

func (d *TankStats) Kind() ecs.Kind       { return component.KindTank }
func (d *TankStats) Value() ecs.Component { return component.Tank{} }

// UnitStats declares the unit stat block. Per-turn counters are never authored.
type UnitStats struct {
	attachment
	unit component.Unit
}

func NewUnitStats(u component.Unit) *UnitStats {
	u.RemainingRange = 0
	u.RemainingAttacks = 0
	return &UnitStats{unit: u}
}

func (d *UnitStats) Kind() ecs.Kind       { return component.KindUnit }
func (d *UnitStats) Value() ecs.Component { return d.unit }
func (d *UnitStats) Unit() component.Unit { return d.unit }

func (d *UnitStats) SetIntegrity(v int) {
	d.update(func(u *component.Unit) { u.Integrity = v })
}

func (d *UnitStats) SetDamage(v int) {
	d.update(func(u *component.Unit) { u.Damage = v })
}

func (d *UnitStats) SetMaxAttackRange(v int) {
	d.update(func(u *component.Unit) { u.MaxAttackRange = v })
}

func (d *UnitStats) SetMinAttackRange(v int) {
	d.update(func(u *component.Unit) { u.MinAttackRange = v })
}

func (d *UnitStats) SetArmor(v int) {
	d.update(func(u *component.Unit) { u.Armor = v })
}

func (d *UnitStats) SetMobility(v int) {
	d.update(func(u *component.Unit) { u.Mobility = v })
}

func (d *UnitStats) update(fn func(*component.Unit)) {
	next := d.unit
	fn(&next)
	if next == d.unit {
		return
	}
	d.unit = next
	d.changed(d)
}

// UnitPosition declares where the unit stands and how it is turned.
type UnitPosition struct {
	attachment
	pos component.UnitPosition
}

func NewUnitPosition(at hex.Hexagon) *UnitPosition {
	return &UnitPosition{pos: component.UnitPosition{Position: at}}
}

func (d *UnitPosition) Kind() ecs.Kind                   { return component.KindUnitPosition }
func (d *UnitPosition) Value() ecs.Component             { return d.pos }
func (d *UnitPosition) Position() component.UnitPosition { return d.pos }

func (d *UnitPosition) SetHexagon(h hex.Hexagon) {
	d.update(func(p *component.UnitPosition) { p.Position = h })
}

// SetQ and SetR change one axis; S follows.
func (d *UnitPosition) SetQ(q int) {
	d.update(func(p *component.UnitPosition) { p.Position = p.Position.WithQ(q) })
}

func (d *UnitPosition) SetR(r int) {
	d.update(func(p *component.UnitPosition) { p.Position = p.Position.WithR(r) })
}

func (d *UnitPosition) SetBodyRotation(v float32) {
	d.update(func(p *component.UnitPosition) { p.BodyRotation = v })
}

func (d *UnitPosition) SetWeaponRotation(v float32) {
	d.update(func(p *component.UnitPosition) { p.WeaponRotation = v })
}

func (d *UnitPosition) update(fn func(*component.UnitPosition)) {
	next := d.pos
	fn(&next)
	if next == d.pos {
		return
	}
	d.pos = next
	d.changed(d)
}

// NewDescriptor returns a descriptor of the given kind with zero values.
func NewDescriptor(kind ecs.Kind) (Descriptor, error) {
	switch kind {
	case component.KindPlayer:
		return NewPlayerRef(""), nil
	case component.KindArtillery:
		return NewArtilleryStats(), nil
	case component.KindTank:
		return NewTankStats(), nil
	case component.KindUnit:
		return NewUnitStats(component.Unit{}), nil
	case component.KindUnitPosition:
		return NewUnitPosition(hex.Zero), nil
	}
	return nil, fmt.Errorf("unknown component kind %q", kind)
}
