package atmos

import "atmos-ca/internal/gas"

// layoutTiles rings the station with walls, sprinkles interior walls and
// punches the configured number of hull breaches.
func (w *World) layoutTiles() {
	w.tiles.Fill(TileFloor)
	tiles := w.tiles.Cells()
	if w.w < 3 || w.h < 3 {
		return
	}

	var hull []int
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			idx := w.tiles.Index(x, y)
			edge := x == 0 || y == 0 || x == w.w-1 || y == w.h-1
			corner := (x == 0 || x == w.w-1) && (y == 0 || y == w.h-1)
			switch {
			case edge:
				tiles[idx] = TileWall
				if !corner {
					hull = append(hull, idx)
				}
			case w.rng.Chance(w.cfg.Params.WallChance):
				tiles[idx] = TileWall
			}
		}
	}

	for b := 0; b < w.cfg.Params.BreachCount && len(hull) > 0; b++ {
		pick := w.rng.IntN(len(hull))
		tiles[hull[pick]] = TileSpace
		hull[pick] = hull[len(hull)-1]
		hull = hull[:len(hull)-1]
	}
}

func (w *World) fillAir() {
	p := w.cfg.Params
	for i, tile := range w.tiles.Cells() {
		if tile != TileFloor {
			continue
		}
		m := w.mix[i]
		m.Seed(gas.Oxygen, p.AirOxygen)
		m.Seed(gas.Nitrogen, p.AirNitrogen)
	}
}

func (w *World) seedLeaks() {
	p := w.cfg.Params
	if p.LeakCount <= 0 || p.LeakMoles <= 0 {
		return
	}
	var floor []int
	for i, tile := range w.tiles.Cells() {
		if tile == TileFloor {
			floor = append(floor, i)
		}
	}
	for l := 0; l < p.LeakCount && len(floor) > 0; l++ {
		pick := w.rng.IntN(len(floor))
		m := w.mix[floor[pick]]
		m.Seed(gas.Plasma, m.Moles(gas.Plasma)+p.LeakMoles)
		if p.LeakTemperature > 0 {
			m.SetTemperature(p.LeakTemperature)
		}
		floor[pick] = floor[len(floor)-1]
		floor = floor[:len(floor)-1]
	}
}
