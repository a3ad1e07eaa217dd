package gas

// DefaultFactor is the exchange divisor used between adjacent cells.
const DefaultFactor = 8.0

// Diffuse moves 1/factor of the per-species concentration gap between self and
// other into both pending buffers, then shares heat. Call it once per adjacent
// pair per tick.
func Diffuse(self, other *Mixture, factor float64) {
	if factor <= 0 {
		factor = DefaultFactor
	}
	for i := range self.composition {
		s := Species(i)
		amount := (other.composition[i] - self.composition[i]) / factor
		self.AddPendingGas(s, amount)
		other.AddPendingGas(s, -amount)
	}
	ShareTemp(self, other, factor)
}

// ShareTemp exchanges heat between self and other. The flow is scaled by the
// capacity of the hotter side and converted back with each side's own
// capacity, so the exchange does not conserve energy. A side with no capacity
// is left untouched while the other side still takes its share.
func ShareTemp(self, other *Mixture, factor float64) {
	if factor <= 0 {
		factor = DefaultFactor
	}
	hcSelf := self.HeatCapacity() * self.TotalMass()
	hcOther := other.HeatCapacity() * other.TotalMass()

	energyFlow := other.temperature - self.temperature
	if energyFlow > 0 {
		energyFlow *= hcOther
	} else {
		energyFlow *= hcSelf
	}
	energyFlow *= 1 / factor

	// A vacuum side has no capacity to warm or cool.
	if hcSelf != 0 {
		self.AddPendingTemperature(energyFlow / hcSelf)
	}
	if hcOther != 0 {
		other.AddPendingTemperature(-energyFlow / hcOther)
	}
}
