package data

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/component"
	"github.com/hexstrat/hexstrat/internal/hex"
	"github.com/hexstrat/hexstrat/internal/reconcile"
)

// PlayerEntry is one authored player. A null entry, or one without a name,
// is a placeholder the registry names on reconcile.
type PlayerEntry struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // "#rrggbb"; empty picks a palette colour
}

// ComponentEntry is one component of an authored entity. Only the fields of
// its kind are read.
type ComponentEntry struct {
	Kind string `yaml:"kind"`

	// player
	PlayerID string `yaml:"player_id"`

	// unit
	Integrity      int `yaml:"integrity"`
	Damage         int `yaml:"damage"`
	MaxAttackRange int `yaml:"max_attack_range"`
	MinAttackRange int `yaml:"min_attack_range"`
	Armor          int `yaml:"armor"`
	Mobility       int `yaml:"mobility"`

	// unit_position
	Q              int     `yaml:"q"`
	R              int     `yaml:"r"`
	BodyRotation   float32 `yaml:"body_rotation"`
	WeaponRotation float32 `yaml:"weapon_rotation"`
}

// EntityEntry is one authored entity slot.
type EntityEntry struct {
	Name       string           `yaml:"name"`
	Components []ComponentEntry `yaml:"components"`
}

// Scene is the YAML form of an authored entity graph plus its player list.
// Null entries are kept: they are the empty slots the editor leaves behind.
type Scene struct {
	Players  []*PlayerEntry `yaml:"players"`
	Entities []*EntityEntry `yaml:"entities"`
}

// LoadScene loads a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return s, nil
}

func ParseScene(raw []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	for i, e := range s.Entities {
		if e == nil {
			continue
		}
		seen := make(map[string]bool, len(e.Components))
		for _, c := range e.Components {
			if _, err := c.descriptor(); err != nil {
				return nil, fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
			}
			if seen[c.Kind] {
				return nil, fmt.Errorf("entity %d (%s): component %q declared twice", i, e.Name, c.Kind)
			}
			seen[c.Kind] = true
		}
	}
	for i, p := range s.Players {
		if p == nil || p.Color == "" {
			continue
		}
		if _, err := colorful.Hex(p.Color); err != nil {
			return nil, fmt.Errorf("player %d color %q: %w", i, p.Color, err)
		}
	}
	return &s, nil
}

func (c ComponentEntry) descriptor() (authoring.Descriptor, error) {
	switch c.Kind {
	case string(component.KindPlayer):
		return authoring.NewPlayerRef(c.PlayerID), nil
	case string(component.KindUnit):
		return authoring.NewUnitStats(component.Unit{
			Integrity:      c.Integrity,
			Damage:         c.Damage,
			MaxAttackRange: c.MaxAttackRange,
			MinAttackRange: c.MinAttackRange,
			Armor:          c.Armor,
			Mobility:       c.Mobility,
		}), nil
	case string(component.KindUnitPosition):
		p := authoring.NewUnitPosition(hex.Axial(c.Q, c.R))
		p.SetBodyRotation(c.BodyRotation)
		p.SetWeaponRotation(c.WeaponRotation)
		return p, nil
	case string(component.KindTank):
		return authoring.NewTankStats(), nil
	case string(component.KindArtillery):
		return authoring.NewArtilleryStats(), nil
	}
	return nil, fmt.Errorf("unknown component kind %q", c.Kind)
}

// Build turns the scene into fresh authoring objects. Nodes start unbound.
func (s *Scene) Build() (*authoring.Graph, *authoring.PlayerList, error) {
	slots := make([]*authoring.EntityNode, len(s.Entities))
	for i, e := range s.Entities {
		if e == nil {
			continue
		}
		comps := make([]authoring.Descriptor, 0, len(e.Components))
		for _, c := range e.Components {
			d, err := c.descriptor()
			if err != nil {
				return nil, nil, fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
			}
			comps = append(comps, d)
		}
		slots[i] = authoring.NewEntityNode(e.Name, comps...)
	}

	players := make([]*component.PlayerData, len(s.Players))
	for i, p := range s.Players {
		if p == nil || (p.Name == "" && p.Color == "") {
			continue
		}
		var col colorful.Color
		if p.Color != "" {
			c, err := colorful.Hex(p.Color)
			if err != nil {
				return nil, nil, fmt.Errorf("player %d color %q: %w", i, p.Color, err)
			}
			col = c
		} else {
			col = reconcile.PaletteColor(i)
		}
		players[i] = &component.PlayerData{Name: p.Name, Color: col}
	}
	return authoring.NewGraph(slots...), authoring.NewPlayerList(players...), nil
}

// OffMap returns the names of entities whose position lies outside the grid.
func (s *Scene) OffMap(g *hex.Grid) []string {
	var out []string
	for _, e := range s.Entities {
		if e == nil {
			continue
		}
		for _, c := range e.Components {
			if c.Kind == string(component.KindUnitPosition) && !g.Contains(hex.Axial(c.Q, c.R)) {
				out = append(out, e.Name)
			}
		}
	}
	return out
}
