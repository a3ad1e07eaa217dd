package atmos

import "image/color"

const (
	displayWall    = 0
	displaySpace   = 1
	displayBandMin = 2

	displayBurningBit = 0x80
)

// temperatureBands are the upper bounds, in kelvin, of each display band.
var temperatureBands = []float64{200, 273.15, 320, 450, 800, 2000, 10000}

var atmosPalette = buildAtmosPalette()

// Palette exposes the colour palette used for rendering the station.
func (w *World) Palette() []color.RGBA {
	return atmosPalette
}

func buildAtmosPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		palette[i] = paletteColorFor(uint8(i))
	}
	return palette
}

func paletteColorFor(v uint8) color.RGBA {
	if v&displayBurningBit != 0 {
		return color.RGBA{R: 255, G: 130, B: 40, A: 255}
	}
	switch v {
	case displayWall:
		return color.RGBA{R: 90, G: 90, B: 100, A: 255}
	case displaySpace:
		return color.RGBA{R: 5, G: 5, B: 20, A: 255}
	}
	band := int(v) - displayBandMin
	bands := len(temperatureBands) + 1
	if band >= bands {
		band = bands - 1
	}
	t := float64(band) / float64(bands-1)
	cold := color.RGBA{R: 40, G: 80, B: 200, A: 255}
	hot := color.RGBA{R: 230, G: 40, B: 30, A: 255}
	return lerpRGBA(cold, hot, t)
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return color.RGBA{
		R: uint8(float64(a.R)*(1-t) + float64(b.R)*t + 0.5),
		G: uint8(float64(a.G)*(1-t) + float64(b.G)*t + 0.5),
		B: uint8(float64(a.B)*(1-t) + float64(b.B)*t + 0.5),
		A: 255,
	}
}

func temperatureBand(t float64) uint8 {
	for i, limit := range temperatureBands {
		if t < limit {
			return uint8(i)
		}
	}
	return uint8(len(temperatureBands))
}

func encodeDisplayValue(tile Tile, temperature float64, burning bool) uint8 {
	switch tile {
	case TileWall:
		return displayWall
	case TileSpace:
		return displaySpace
	}
	value := displayBandMin + temperatureBand(temperature)
	if burning {
		value |= displayBurningBit
	}
	return value
}

func (w *World) rebuildDisplay() {
	tiles := w.tiles.Cells()
	for i := range w.display {
		m := w.mix[i]
		w.display[i] = encodeDisplayValue(tiles[i], m.Temperature(), m.Burning())
	}
}
