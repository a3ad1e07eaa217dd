package gas

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestDiffuseConservesMatterPerSpecies(t *testing.T) {
	reg := DefaultRegistry()
	rng := rand.New(rand.NewPCG(42, 99))
	for trial := 0; trial < 200; trial++ {
		a := NewMixture(reg)
		b := NewMixture(reg)
		for _, s := range AllSpecies() {
			a.Seed(s, rng.Float64()*50)
			b.Seed(s, rng.Float64()*50)
		}
		a.SetTemperature(200 + rng.Float64()*400)
		b.SetTemperature(200 + rng.Float64()*400)
		factor := 1.5 + rng.Float64()*10

		Diffuse(a, b, factor)

		for _, s := range AllSpecies() {
			da := a.Pending(s) - a.Moles(s)
			db := b.Pending(s) - b.Moles(s)
			if math.Abs(da+db) > 1e-9 {
				t.Fatalf("trial %d species %s: deltas %f and %f do not cancel", trial, s, da, db)
			}
		}
	}
}

func TestDiffuseConvergesWithoutOvershoot(t *testing.T) {
	reg := DefaultRegistry()
	a := NewMixture(reg)
	b := NewMixture(reg)
	a.Seed(Nitrogen, 10)

	Diffuse(a, b, DefaultFactor)
	a.Commit()
	b.Commit()

	if !approx(a.Moles(Nitrogen), 8.75, 1e-9) || !approx(b.Moles(Nitrogen), 1.25, 1e-9) {
		t.Fatalf("after one tick expected 8.75/1.25, got %f/%f", a.Moles(Nitrogen), b.Moles(Nitrogen))
	}

	prevGap := a.Moles(Nitrogen) - b.Moles(Nitrogen)
	for tick := 2; tick <= 60; tick++ {
		Diffuse(a, b, DefaultFactor)
		a.Commit()
		b.Commit()

		na, nb := a.Moles(Nitrogen), b.Moles(Nitrogen)
		if na < 5-1e-12 || nb > 5+1e-12 {
			t.Fatalf("tick %d overshot equilibrium: %f/%f", tick, na, nb)
		}
		gap := na - nb
		if gap > prevGap {
			t.Fatalf("tick %d gap grew from %f to %f", tick, prevGap, gap)
		}
		prevGap = gap
	}
	if prevGap > 1e-6 {
		t.Fatalf("expected near equilibrium after 60 ticks, gap %g", prevGap)
	}
}

func TestDiffuseTreatsNonPositiveFactorAsDefault(t *testing.T) {
	reg := DefaultRegistry()
	a := NewMixture(reg)
	b := NewMixture(reg)
	a.Seed(Oxygen, 8)

	Diffuse(a, b, 0)

	if got := b.Pending(Oxygen); !approx(got, 1, eps) {
		t.Fatalf("expected default factor transfer of 1 mol, got %f", got)
	}
}

func TestShareTempHotterSideDropsByFactor(t *testing.T) {
	reg := DefaultRegistry()
	hot := NewMixture(reg)
	cold := NewMixture(reg)
	hot.Seed(Nitrogen, 10)
	hot.SetTemperature(500)
	cold.Seed(Oxygen, 3)
	cold.SetTemperature(300)

	ShareTemp(cold, hot, DefaultFactor)

	if got := hot.PendingTemperature(); !approx(got, -200/DefaultFactor, 1e-9) {
		t.Fatalf("hot side should lose dT/factor, got %f", got)
	}
	hcHot := hot.HeatCapacity() * hot.TotalMass()
	hcCold := cold.HeatCapacity() * cold.TotalMass()
	want := 200 * hcHot / DefaultFactor / hcCold
	if got := cold.PendingTemperature(); !approx(got, want, 1e-9) {
		t.Fatalf("cold side expected %f, got %f", want, got)
	}
}

func TestShareTempIsNotThermallyConservative(t *testing.T) {
	reg := DefaultRegistry()
	a := NewMixture(reg)
	b := NewMixture(reg)
	a.Seed(Nitrogen, 10)
	a.SetTemperature(400)
	b.Seed(Plasma, 2)
	b.SetTemperature(300)

	ShareTemp(a, b, DefaultFactor)

	// Weighted by heat capacity times mass the exchange balances...
	weighted := a.PendingTemperature()*a.HeatCapacity()*a.TotalMass() +
		b.PendingTemperature()*b.HeatCapacity()*b.TotalMass()
	if math.Abs(weighted) > 1e-9 {
		t.Fatalf("capacity-mass weighted exchange should cancel, got %g", weighted)
	}
	// ...but thermal energy (heat capacity times dT) does not.
	thermal := a.PendingTemperature()*a.HeatCapacity() + b.PendingTemperature()*b.HeatCapacity()
	if math.Abs(thermal) < 1e-6 {
		t.Fatalf("expected non-zero thermal energy drift, got %g", thermal)
	}
}

func TestShareTempCanOvershoot(t *testing.T) {
	reg := DefaultRegistry()
	big := NewMixture(reg)
	tiny := NewMixture(reg)
	big.Seed(Plasma, 100)
	big.SetTemperature(400)
	tiny.Seed(Nitrogen, 0.1)
	tiny.SetTemperature(300)

	ShareTemp(tiny, big, DefaultFactor)
	big.Commit()
	tiny.Commit()

	if tiny.Temperature() <= big.Temperature() {
		t.Fatalf("expected the small cold cell to overshoot, got %f vs %f", tiny.Temperature(), big.Temperature())
	}
}

func TestShareTempWithVacuumCoolsGasSide(t *testing.T) {
	reg := DefaultRegistry()
	vacuum := NewMixture(reg)
	air := NewMixture(reg)
	air.Seed(Oxygen, 20)
	air.SetTemperature(350)

	Diffuse(vacuum, air, DefaultFactor)

	if vacuum.PendingTemperature() != 0 {
		t.Fatalf("vacuum side must not change temperature, got %f", vacuum.PendingTemperature())
	}
	want := -(350 - DefaultTemperature) / DefaultFactor
	if got := air.PendingTemperature(); !approx(got, want, eps) {
		t.Fatalf("gas side should shed heat toward the vacuum: expected %f, got %f", want, got)
	}
	if got := vacuum.Pending(Oxygen); !approx(got, 2.5, eps) {
		t.Fatalf("matter should still flow into vacuum, got %f", got)
	}
	vacuum.Commit()
	air.Commit()
	if math.IsNaN(vacuum.Temperature()) || math.IsNaN(air.Temperature()) {
		t.Fatal("temperatures must stay finite")
	}
}

func TestShareTempEqualTemperaturesIsNoop(t *testing.T) {
	reg := DefaultRegistry()
	a := NewMixture(reg)
	b := NewMixture(reg)
	a.Seed(Oxygen, 1)
	b.Seed(CO2, 7)

	ShareTemp(a, b, DefaultFactor)

	if a.PendingTemperature() != 0 || b.PendingTemperature() != 0 {
		t.Fatal("equal temperatures should not exchange heat")
	}
}

func TestShareTempHotGasOnOtherSideOfVacuum(t *testing.T) {
	reg := DefaultRegistry()
	vacuum := NewMixture(reg)
	hot := NewMixture(reg)
	hot.Seed(Nitrogen, 10)
	hot.SetTemperature(400)

	ShareTemp(vacuum, hot, DefaultFactor)

	if got := hot.PendingTemperature(); !approx(got, -13.35625, 1e-9) {
		t.Fatalf("expected -13.35625, got %f", got)
	}
	if vacuum.PendingTemperature() != 0 {
		t.Fatalf("vacuum side moved by %f", vacuum.PendingTemperature())
	}
}
