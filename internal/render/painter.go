//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-indexed cell data into a single image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit converts cells through palette and draws them scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	FillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
