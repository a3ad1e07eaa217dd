package atmos

import (
	"fmt"
	"log/slog"

	"atmos-ca/internal/core"
	"atmos-ca/internal/gas"
)

// Tile enumerates the structural layer of a station cell.
type Tile uint8

const (
	TileFloor Tile = iota
	TileWall
	// TileSpace cells hold gas but are drained towards vacuum every tick.
	TileSpace
)

// spaceTemperature is the cosmic background that vented cells relax to.
const spaceTemperature = 2.7

type injection struct {
	idx     int
	species gas.Species
	moles   float64
}

// Stats summarises the committed state after a tick.
type Stats struct {
	Tick            uint64
	TotalMoles      float64
	BurningCells    int
	Ignitions       int
	MeanTemperature float64
	MaxTemperature  float64
	MaxPressure     float64
}

// World drives a grid of gas mixtures through the accumulate/commit tick.
type World struct {
	cfg Config
	reg *gas.Registry

	w, h int

	tiles   *core.Grid[Tile]
	mix     []*gas.Mixture
	pairs   []core.Pair
	display []uint8

	pendingInjections []injection
	pendingSparks     []int

	tick  uint64
	stats Stats

	rng *core.RNG
	log *slog.Logger
}

// New returns a station sim with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a station configured from the provided options. The
// world is empty until Reset is called.
func NewWithConfig(cfg Config) *World {
	reg := cfg.Registry
	if reg == nil {
		reg = gas.DefaultRegistry()
	}
	if cfg.Params.Factor <= 0 {
		cfg.Params.Factor = gas.DefaultFactor
	}
	tiles := core.NewGrid[Tile](cfg.Width, cfg.Height)
	total := tiles.W * tiles.H
	w := &World{
		cfg:     cfg,
		reg:     reg,
		w:       tiles.W,
		h:       tiles.H,
		tiles:   tiles,
		mix:     make([]*gas.Mixture, total),
		display: make([]uint8, total),
		rng:     core.NewRNG(cfg.Seed),
		log:     slog.New(slog.DiscardHandler),
	}
	for i := range w.mix {
		w.mix[i] = w.newMixture()
	}
	w.rebuildPairs()
	return w
}

func (w *World) newMixture() *gas.Mixture {
	m := gas.NewMixture(w.reg)
	m.SetPolicy(w.cfg.Policy)
	return m
}

// SetLogger installs the logger used for fire transitions.
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	w.log = l
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "atmos" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Config returns a copy of the active configuration.
func (w *World) Config() Config { return w.cfg }

// Registry returns the species table shared by every mixture.
func (w *World) Registry() *gas.Registry { return w.reg }

// Tick returns the number of completed ticks since Reset.
func (w *World) Tick() uint64 { return w.tick }

// Stats returns the summary computed at the end of the last tick.
func (w *World) Stats() Stats { return w.stats }

// Summary formats the last tick's stats for the viewer panel.
func (w *World) Summary() []string {
	st := w.stats
	return []string{
		fmt.Sprintf("tick %d", st.Tick),
		fmt.Sprintf("moles %.1f", st.TotalMoles),
		fmt.Sprintf("mean T %.1f K", st.MeanTemperature),
		fmt.Sprintf("max T %.1f K", st.MaxTemperature),
		fmt.Sprintf("max p %.1f", st.MaxPressure),
		fmt.Sprintf("burning %d (+%d)", st.BurningCells, st.Ignitions),
	}
}

// Tiles exposes the structural layer.
func (w *World) Tiles() []Tile { return w.tiles.Cells() }

// Mixtures exposes the per-cell mixtures in row-major order. Wall cells keep an
// inert mixture that never takes part in the tick.
func (w *World) Mixtures() []*gas.Mixture { return w.mix }

// Mixture returns the mixture at (x, y), or nil when out of bounds.
func (w *World) Mixture(x, y int) *gas.Mixture {
	if !w.tiles.InBounds(x, y) {
		return nil
	}
	return w.mix[w.tiles.Index(x, y)]
}

// Open reports whether the cell at idx carries gas.
func (w *World) Open(idx int) bool {
	return w.tiles.Cells()[idx] != TileWall
}

// Reset prepares a fresh station using deterministic randomness.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)
	w.tick = 0
	w.pendingInjections = w.pendingInjections[:0]
	w.pendingSparks = w.pendingSparks[:0]

	w.layoutTiles()
	for i := range w.mix {
		w.mix[i] = w.newMixture()
	}
	w.rebuildPairs()
	w.fillAir()
	w.seedLeaks()
	w.refresh(0)
}

// Step advances every mixture by one tick: all exchange and combustion is
// accumulated into pending buffers before any mixture commits.
func (w *World) Step() {
	if len(w.mix) == 0 {
		return
	}
	tiles := w.tiles.Cells()

	if w.cfg.Policy.Commit == gas.CommitResetPending {
		for i, m := range w.mix {
			if tiles[i] != TileWall {
				m.Rebase()
			}
		}
	}

	for _, inj := range w.pendingInjections {
		w.mix[inj.idx].AddPendingGas(inj.species, inj.moles)
	}
	w.pendingInjections = w.pendingInjections[:0]

	factor := w.cfg.Params.Factor
	for _, p := range w.pairs {
		gas.Diffuse(w.mix[p.A], w.mix[p.B], factor)
	}

	for _, idx := range w.pendingSparks {
		w.mix[idx].Expose()
	}
	w.pendingSparks = w.pendingSparks[:0]
	if w.cfg.Params.SparkChance > 0 {
		for i, m := range w.mix {
			if tiles[i] == TileFloor && w.rng.Chance(w.cfg.Params.SparkChance) {
				m.Expose()
			}
		}
	}

	ignitions := 0
	for i, m := range w.mix {
		if tiles[i] == TileWall {
			continue
		}
		was := m.Burning()
		res := m.Burn()
		if !was && m.Burning() {
			ignitions++
			x, y := w.tiles.Coords(i)
			w.log.Debug("cell ignited",
				slog.Uint64("tick", w.tick),
				slog.Int("x", x), slog.Int("y", y),
				slog.Bool("autoignition", res.Ignited),
				slog.Float64("energy", res.Energy))
		}
	}

	w.vent()

	for i, m := range w.mix {
		if tiles[i] != TileWall {
			m.Commit()
		}
	}

	w.tick++
	w.refresh(ignitions)
}

// vent drains space cells towards vacuum through their pending buffers.
func (w *World) vent() {
	ratio := w.cfg.Params.VentRatio
	if ratio <= 0 {
		return
	}
	for i, tile := range w.tiles.Cells() {
		if tile != TileSpace {
			continue
		}
		m := w.mix[i]
		for _, s := range gas.AllSpecies() {
			m.AddPendingGas(s, -m.Pending(s)*ratio)
		}
		next := m.Temperature() + m.PendingTemperature()
		m.AddPendingTemperature((spaceTemperature - next) * ratio)
	}
}

func (w *World) rebuildPairs() {
	w.pairs = w.tiles.Pairs4(w.Open)
}

func (w *World) refresh(ignitions int) {
	st := Stats{Tick: w.tick, Ignitions: ignitions}
	open := 0
	tiles := w.tiles.Cells()
	for i, m := range w.mix {
		if tiles[i] == TileWall {
			continue
		}
		open++
		st.TotalMoles += m.TotalMoles()
		temp := m.Temperature()
		st.MeanTemperature += temp
		if temp > st.MaxTemperature {
			st.MaxTemperature = temp
		}
		if p := m.Pressure(); p > st.MaxPressure {
			st.MaxPressure = p
		}
		if m.Burning() {
			st.BurningCells++
		}
	}
	if open > 0 {
		st.MeanTemperature /= float64(open)
	}
	w.stats = st
	w.rebuildDisplay()
}

func init() {
	core.Register("atmos", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
