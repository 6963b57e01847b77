package component

import (
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/hex"
)

const KindUnitPosition ecs.Kind = "unit_position"

// UnitPosition places an entity on a map cell. Rotations are in radians.
type UnitPosition struct {
	Position       hex.Hexagon
	BodyRotation   float32
	WeaponRotation float32
}

func (UnitPosition) ComponentKind() ecs.Kind { return KindUnitPosition }
