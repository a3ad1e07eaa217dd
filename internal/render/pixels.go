package render

import "image/color"

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// GrayPalette maps cell values straight onto grey levels, for sims without a
// palette of their own.
func GrayPalette() []color.RGBA {
	p := make([]color.RGBA, 256)
	for i := range p {
		p[i] = color.RGBA{R: uint8(i), G: uint8(i), B: uint8(i), A: 255}
	}
	return p
}
