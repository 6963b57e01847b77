package authoring

import (
	"fmt"

	"github.com/hexstrat/hexstrat/internal/component"
)

// PlayerList is the authored, ordered list of players. A nil entry or an
// entry with an empty name is a placeholder to be named on reconcile.
type PlayerList struct {
	entries []*component.PlayerData
	dirty   bool
}

func NewPlayerList(entries ...*component.PlayerData) *PlayerList {
	l := &PlayerList{}
	l.Commit(entries)
	l.dirty = true
	return l
}

// Entries returns a copy of the entry list; the entries themselves are shared.
func (l *PlayerList) Entries() []*component.PlayerData {
	out := make([]*component.PlayerData, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *PlayerList) Len() int { return len(l.entries) }

func (l *PlayerList) Append(p *component.PlayerData) int {
	l.entries = append(l.entries, p)
	l.dirty = true
	return len(l.entries) - 1
}

// Set replaces entry i.
func (l *PlayerList) Set(i int, p *component.PlayerData) error {
	if i < 0 || i >= len(l.entries) {
		return fmt.Errorf("%w: player %d of %d", ErrSlotRange, i, len(l.entries))
	}
	l.entries[i] = p
	l.dirty = true
	return nil
}

func (l *PlayerList) Remove(i int) error {
	if i < 0 || i >= len(l.entries) {
		return fmt.Errorf("%w: player %d of %d", ErrSlotRange, i, len(l.entries))
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.dirty = true
	return nil
}

// Commit installs the reconciled entries.
func (l *PlayerList) Commit(entries []*component.PlayerData) {
	l.entries = make([]*component.PlayerData, len(entries))
	copy(l.entries, entries)
	l.dirty = false
}

func (l *PlayerList) Dirty() bool { return l.dirty }

// MarkClean drops the pending flag without committing, as after a rejected
// update that must wait for the next edit.
func (l *PlayerList) MarkClean() { l.dirty = false }
