package ecs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the full entity, component and player state.
// Two worlds with the same fingerprint hold the same ids, values and players.
func (w *World) Fingerprint() uint64 {
	d := xxhash.New()
	w.pool.Each(func(id EntityID) {
		fmt.Fprintf(d, "e%d{", uint64(id))
		for _, k := range w.registry.kinds {
			if c, ok := w.registry.stores[k].Get(id); ok {
				fmt.Fprintf(d, "%s=%+v;", k, c)
			}
		}
		_, _ = d.WriteString("}")
	})
	for _, name := range w.PlayerNames() {
		c := w.players[name]
		fmt.Fprintf(d, "p%q=%v;", name, c)
	}
	return d.Sum64()
}
