package component

import "github.com/hexstrat/hexstrat/internal/core/ecs"

const (
	KindUnit      ecs.Kind = "unit"
	KindArtillery ecs.Kind = "artillery"
	KindTank      ecs.Kind = "tank"
)

// Unit stores the combat stat block of an entity.
// Pure data. Turn and combat rules live outside the world.
type Unit struct {
	Integrity      int
	Damage         int
	MaxAttackRange int
	MinAttackRange int
	Armor          int
	Mobility       int

	// Per-turn counters, reset by the turn rules. Authoring always writes 0.
	RemainingRange   int
	RemainingAttacks int
}

func (Unit) ComponentKind() ecs.Kind { return KindUnit }

// Artillery tags an entity as an artillery body.
type Artillery struct{}

func (Artillery) ComponentKind() ecs.Kind { return KindArtillery }

// Tank tags an entity as a tank body.
type Tank struct{}

func (Tank) ComponentKind() ecs.Kind { return KindTank }
