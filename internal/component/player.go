package component

import (
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/lucasb-eyer/go-colorful"
)

const KindPlayer ecs.Kind = "player"

// Player links an entity to the player that owns it, by name.
type Player struct {
	PlayerID string
}

func (Player) ComponentKind() ecs.Kind { return KindPlayer }

// PlayerData is one entry of the player registry.
type PlayerData struct {
	Name  string
	Color colorful.Color
}
