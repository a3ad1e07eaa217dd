package atmos

import (
	"math"
	"slices"
	"testing"

	"atmos-ca/internal/core"
	"atmos-ca/internal/gas"
)

func quietConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.WallChance = 0
	cfg.Params.LeakCount = 0
	cfg.Params.BreachCount = 0
	cfg.Params.AirOxygen = 0
	cfg.Params.AirNitrogen = 0
	return cfg
}

func snapshot(w *World) [][gas.NumSpecies]float64 {
	out := make([][gas.NumSpecies]float64, len(w.Mixtures()))
	for i, m := range w.Mixtures() {
		out[i] = m.Composition()
	}
	return out
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Seed = 99
	cfg.Params.WallChance = 0.2
	cfg.Params.BreachCount = 2

	world := NewWithConfig(cfg)
	world.Reset(0)

	initialTiles := append([]Tile(nil), world.Tiles()...)
	initialGas := snapshot(world)
	initialCells := append([]uint8(nil), world.Cells()...)

	for i := 0; i < 5; i++ {
		world.Step()
	}
	world.Reset(0)

	if !slices.Equal(initialTiles, world.Tiles()) {
		t.Fatal("Reset with config seed not deterministic for tiles")
	}
	if !slices.Equal(initialGas, snapshot(world)) {
		t.Fatal("Reset with config seed not deterministic for gas")
	}
	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for display buffer")
	}
	if world.Tick() != 0 {
		t.Fatalf("Reset should rewind the tick counter, got %d", world.Tick())
	}

	world.Reset(777)
	if slices.Equal(initialTiles, world.Tiles()) {
		t.Fatal("different seeds should produce different layouts")
	}
}

func TestStepIsDeterministic(t *testing.T) {
	a := NewWithConfig(DefaultConfig())
	b := NewWithConfig(DefaultConfig())
	a.Reset(5)
	b.Reset(5)
	for i := 0; i < 30; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(snapshot(a), snapshot(b)) {
		t.Fatal("identical worlds diverged")
	}
	if a.Stats() != b.Stats() {
		t.Fatalf("stats diverged: %+v vs %+v", a.Stats(), b.Stats())
	}
}

func TestStepDiffusesAlongCorridor(t *testing.T) {
	world := NewWithConfig(quietConfig(5, 3))
	world.Reset(1)

	if !world.Inject(1, 1, gas.Nitrogen, 10) {
		t.Fatal("inject should succeed on a floor tile")
	}
	world.Step()

	if got := world.Mixture(1, 1).Moles(gas.Nitrogen); got != 10 {
		t.Fatalf("injection should land on the first commit, got %f", got)
	}

	world.Step()

	want := []float64{8.75, 1.25, 0}
	for x := 1; x <= 3; x++ {
		got := world.Mixture(x, 1).Moles(gas.Nitrogen)
		if math.Abs(got-want[x-1]) > 1e-12 {
			t.Fatalf("cell %d expected %f, got %f", x, want[x-1], got)
		}
	}
	if world.Tick() != 2 {
		t.Fatalf("expected tick 2, got %d", world.Tick())
	}
}

func TestClosedStationConservesMatter(t *testing.T) {
	cfg := quietConfig(12, 10)
	cfg.Params.WallChance = 0.1
	cfg.Params.AirOxygen = 18
	cfg.Params.AirNitrogen = 60
	world := NewWithConfig(cfg)
	world.Reset(3)
	world.Inject(4, 4, gas.CO2, 500)
	world.Step()

	before := world.Stats().TotalMoles
	for i := 0; i < 200; i++ {
		world.Step()
	}
	after := world.Stats().TotalMoles
	if math.Abs(before-after) > 1e-6*before {
		t.Fatalf("total moles drifted from %f to %f", before, after)
	}
}

func TestStepIndependentOfPairOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 16
	cfg.Height = 12
	cfg.Params.LeakCount = 2

	forward := NewWithConfig(cfg)
	reversed := NewWithConfig(cfg)
	forward.Reset(11)
	reversed.Reset(11)
	slices.Reverse(reversed.pairs)

	for i := 0; i < 10; i++ {
		forward.Step()
		reversed.Step()
	}

	a, b := snapshot(forward), snapshot(reversed)
	for i := range a {
		for s := range a[i] {
			if math.Abs(a[i][s]-b[i][s]) > 1e-9*(1+math.Abs(a[i][s])) {
				t.Fatalf("cell %d species %d depends on pair order: %g vs %g", i, s, a[i][s], b[i][s])
			}
		}
	}
}

func TestPlasmaLeakIgnites(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Height = 20
	cfg.Params.LeakCount = 1
	world := NewWithConfig(cfg)
	world.Reset(8)

	world.Step()

	st := world.Stats()
	if st.BurningCells == 0 || st.Ignitions == 0 {
		t.Fatalf("expected the hot leak to autoignite, got %+v", st)
	}
	burning := 0
	for _, v := range world.Cells() {
		if v&displayBurningBit != 0 {
			burning++
		}
	}
	if burning != st.BurningCells {
		t.Fatalf("display shows %d burning cells, stats %d", burning, st.BurningCells)
	}
}

func TestIgniteNeedsFuel(t *testing.T) {
	cfg := quietConfig(6, 6)
	cfg.Params.AirOxygen = 20
	world := NewWithConfig(cfg)
	world.Reset(2)

	world.Ignite(2, 2)
	world.Step()
	if world.Stats().BurningCells != 0 {
		t.Fatal("oxygen alone must not burn")
	}

	world.Inject(2, 2, gas.Plasma, 15)
	world.Step()
	world.Ignite(2, 2)
	world.Step()
	if !world.Mixture(2, 2).Burning() {
		t.Fatal("exposed plasma and oxygen should catch fire")
	}
}

func TestWallsBlockExchange(t *testing.T) {
	world := NewWithConfig(quietConfig(7, 3))
	world.Reset(1)
	world.SetTile(3, 1, TileWall)
	world.Inject(1, 1, gas.Oxygen, 40)

	for i := 0; i < 50; i++ {
		world.Step()
	}
	if got := world.Mixture(4, 1).Moles(gas.Oxygen); got != 0 {
		t.Fatalf("gas leaked through a wall: %f", got)
	}
	if world.Inject(3, 1, gas.Oxygen, 1) || world.Ignite(3, 1) {
		t.Fatal("wall tiles must reject gas events")
	}
	if world.Cells()[world.tiles.Index(3, 1)] != displayWall {
		t.Fatal("wall should render as wall")
	}
}

func TestBreachVentsStation(t *testing.T) {
	cfg := quietConfig(10, 10)
	cfg.Params.AirOxygen = 20
	cfg.Params.BreachCount = 1
	world := NewWithConfig(cfg)
	world.Reset(4)
	world.Step()

	start := world.Stats().TotalMoles
	for i := 0; i < 100; i++ {
		world.Step()
	}
	if world.Stats().TotalMoles >= start {
		t.Fatalf("breached station should lose gas: %f -> %f", start, world.Stats().TotalMoles)
	}
	for i, tile := range world.Tiles() {
		if tile == TileSpace && world.Mixtures()[i].TotalMoles() > 1e-9 {
			t.Fatalf("space tile %d should be drained, has %f mol", i, world.Mixtures()[i].TotalMoles())
		}
	}
}

func TestResetPendingPolicyMatchesCarryForward(t *testing.T) {
	carry := DefaultConfig()
	carry.Width, carry.Height = 16, 16
	reset := carry
	reset.Policy.Commit = gas.CommitResetPending

	a := NewWithConfig(carry)
	b := NewWithConfig(reset)
	a.Reset(21)
	b.Reset(21)
	a.Inject(5, 5, gas.Plasma, 30)
	b.Inject(5, 5, gas.Plasma, 30)
	for i := 0; i < 25; i++ {
		a.Step()
		b.Step()
	}

	if !slices.Equal(snapshot(a), snapshot(b)) {
		t.Fatal("rebased reset-pending world should match carry-forward")
	}
	for i, tile := range b.Tiles() {
		if tile != TileWall && b.Mixtures()[i].Pending(gas.Oxygen) != 0 {
			t.Fatal("reset-pending world should hold empty pending buffers between ticks")
		}
	}
}

func TestPolicyToggleConservesMatter(t *testing.T) {
	cfg := quietConfig(8, 8)
	cfg.Params.AirOxygen = 20
	cfg.Params.AirNitrogen = 60
	world := NewWithConfig(cfg)
	world.Reset(1)
	world.Step()
	start := world.Stats().TotalMoles
	if start == 0 {
		t.Fatal("station should hold air")
	}

	for round, resetPending := range []bool{true, false, true, false} {
		world.SetBoolParameter("reset_pending", resetPending)
		for i := 0; i < 3; i++ {
			world.Step()
		}
		if got := world.Stats().TotalMoles; math.Abs(got-start) > 1e-9*start {
			t.Fatalf("round %d (reset_pending=%v): moles %f, expected %f", round, resetPending, got, start)
		}
	}
}

func TestParametersAndSetters(t *testing.T) {
	world := New(8, 8)

	if !world.SetFloatParameter("spark_chance", 3) {
		t.Fatal("spark chance should be adjustable")
	}
	if world.Config().Params.SparkChance != 1 {
		t.Fatalf("expected spark chance to clamp to 1, got %f", world.Config().Params.SparkChance)
	}
	if world.SetFloatParameter("nope", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	if !world.SetBoolParameter("dual_role_once", true) {
		t.Fatal("dual role toggle should be accepted")
	}
	for _, m := range world.Mixtures() {
		if !m.Policy().DualRoleOnce {
			t.Fatal("policy should propagate to every mixture")
		}
	}

	p, ok := world.Parameters().Find("dual_role_once")
	if !ok || p.Value != "true" || p.Type != core.ParamTypeBool {
		t.Fatalf("unexpected snapshot entry %+v", p)
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":             "40",
		"h":             "30",
		"factor":        "4",
		"vent_ratio":    "2",
		"reset_pending": "true",
		"leak_count":    "-1",
	})
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Params.Factor != 4 {
		t.Fatalf("expected factor 4, got %f", cfg.Params.Factor)
	}
	if cfg.Params.VentRatio != DefaultConfig().Params.VentRatio {
		t.Fatal("out of range vent ratio should be ignored")
	}
	if cfg.Params.LeakCount != DefaultConfig().Params.LeakCount {
		t.Fatal("negative leak count should be ignored")
	}
	if cfg.Policy.Commit != gas.CommitResetPending {
		t.Fatal("reset_pending should select the reset policy")
	}
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Lookup("atmos")
	if !ok {
		t.Fatal("atmos sim should register itself")
	}
	sim := factory(map[string]string{"w": "10", "h": "9"})
	if sim.Size() != (core.Size{W: 10, H: 9}) {
		t.Fatalf("unexpected size %+v", sim.Size())
	}
}

func TestSummaryReportsTick(t *testing.T) {
	world := NewWithConfig(quietConfig(4, 4))
	world.Reset(1)
	world.Step()
	lines := world.Summary()
	if len(lines) == 0 || lines[0] != "tick 1" {
		t.Fatalf("unexpected summary %q", lines)
	}
}
