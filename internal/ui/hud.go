//go:build ebiten

package ui

import (
	"strings"

	"atmos-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// HUD draws the text panel for a simulation to the right of the grid.
type HUD struct {
	sim    core.Sim
	width  int
	paused bool
}

// NewHUD returns a panel of the given pixel width.
func NewHUD(sim core.Sim, width int) *HUD {
	return &HUD{sim: sim, width: width}
}

// Width reports the horizontal space the panel occupies.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetPaused updates the run state shown in the header.
func (h *HUD) SetPaused(p bool) {
	if h != nil {
		h.paused = p
	}
}

// Draw prints the panel starting at x.
func (h *HUD) Draw(screen *ebiten.Image, x int) {
	if h == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(Lines(h.sim, h.paused), "\n"), x+8, 8)
}
