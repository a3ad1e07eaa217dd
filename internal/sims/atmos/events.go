package atmos

import "atmos-ca/internal/gas"

// Ignite exposes the cell at (x, y) to an ignition source on the next tick.
func (w *World) Ignite(x, y int) bool {
	if !w.tiles.InBounds(x, y) {
		return false
	}
	idx := w.tiles.Index(x, y)
	if !w.Open(idx) {
		return false
	}
	w.pendingSparks = append(w.pendingSparks, idx)
	return true
}

// Inject queues moles of s to be added to (x, y) during the next tick's
// accumulation phase. Negative amounts remove gas.
func (w *World) Inject(x, y int, s gas.Species, moles float64) bool {
	if !w.tiles.InBounds(x, y) || int(s) >= gas.NumSpecies {
		return false
	}
	idx := w.tiles.Index(x, y)
	if !w.Open(idx) {
		return false
	}
	w.pendingInjections = append(w.pendingInjections, injection{idx: idx, species: s, moles: moles})
	return true
}

// SetTile changes the structural tile at (x, y). Building a wall discards the
// gas in the cell; opening a wall leaves an empty cell at room temperature.
func (w *World) SetTile(x, y int, tile Tile) bool {
	if !w.tiles.InBounds(x, y) {
		return false
	}
	prev := w.tiles.At(x, y)
	if prev == tile {
		return true
	}
	w.tiles.Set(x, y, tile)
	idx := w.tiles.Index(x, y)
	if tile == TileWall || prev == TileWall {
		w.mix[idx] = w.newMixture()
		w.rebuildPairs()
	}
	w.rebuildDisplay()
	return true
}

// SetPolicy switches the commit and combustion policy on every mixture.
// Leaving the reset-pending policy restores each open cell's pending baseline,
// which that policy keeps at zero between ticks.
func (w *World) SetPolicy(p gas.Policy) {
	leavingReset := w.cfg.Policy.Commit == gas.CommitResetPending && p.Commit != gas.CommitResetPending
	w.cfg.Policy = p
	for i, m := range w.mix {
		m.SetPolicy(p)
		if leavingReset && w.Open(i) {
			m.Rebase()
		}
	}
}
