package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/hexstrat/hexstrat/internal/authoring"
	"github.com/hexstrat/hexstrat/internal/component"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
)

const placeholderPrefix = "Player "

// PlayerSync reconciles the authored player list against the world's
// name -> colour map.
type PlayerSync struct {
	world *ecs.World
	log   *zap.Logger
}

func NewPlayerSync(world *ecs.World, log *zap.Logger) *PlayerSync {
	return &PlayerSync{world: world, log: log}
}

// NormalizeName trims a player name and puts it in Unicode NFC form, so
// visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Reconcile validates entries and installs them as the world's player map.
// Placeholders are named "Player N" with the lowest N not already used by
// the world's current map or by this update. On a duplicate name nothing
// changes and the error wraps ErrDuplicateName.
func (s *PlayerSync) Reconcile(entries []*component.PlayerData) ([]*component.PlayerData, error) {
	claimed := make(map[string]int, len(entries))
	for i, e := range entries {
		if e == nil {
			continue
		}
		name := NormalizeName(e.Name)
		if name == "" {
			continue
		}
		if j, ok := claimed[name]; ok {
			return nil, &DuplicateNameError{Name: name, First: j, Second: i}
		}
		claimed[name] = i
	}

	current := s.world.Players()
	next := make(map[string]colorful.Color, len(entries))
	out := make([]*component.PlayerData, len(entries))
	probe := 0
	for i, e := range entries {
		var name string
		if e != nil {
			name = NormalizeName(e.Name)
		}
		if name != "" {
			next[name] = e.Color
			out[i] = &component.PlayerData{Name: name, Color: e.Color}
			continue
		}

		for {
			name = fmt.Sprintf("%s%d", placeholderPrefix, probe)
			probe++
			_, inWorld := current[name]
			_, inUpdate := claimed[name]
			if !inWorld && !inUpdate {
				break
			}
		}
		claimed[name] = i
		color := PaletteColor(i)
		if e != nil {
			color = e.Color
		}
		next[name] = color
		out[i] = &component.PlayerData{Name: name, Color: color}
		s.log.Debug("named placeholder player", zap.String("name", name), zap.Int("entry", i))
	}

	s.world.ReplacePlayers(next)
	return out, nil
}

// ReconcileList reconciles a player list and, on success, commits the
// named entries back so the next pass is stable.
func (s *PlayerSync) ReconcileList(l *authoring.PlayerList) error {
	out, err := s.Reconcile(l.Entries())
	if err != nil {
		var dup *DuplicateNameError
		if errors.As(err, &dup) {
			s.log.Warn("player update rejected",
				zap.String("name", dup.Name), zap.Int("first", dup.First), zap.Int("second", dup.Second))
		}
		return err
	}
	l.Commit(out)
	return nil
}

// PaletteColor returns a distinct, deterministic colour for entry i,
// stepping the hue by the golden angle.
func PaletteColor(i int) colorful.Color {
	hue := float64(i) * 137.508
	for hue >= 360 {
		hue -= 360
	}
	return colorful.Hsv(hue, 0.65, 0.9)
}
