package gas

const (
	// minReactant is the fuel and oxidant floor below which nothing burns.
	minReactant = 1e-4
	// minBurnPressure is the pressure floor for combustion.
	minBurnPressure = 10.0
	// burnRateDivisor caps the fraction of reactants consumed per tick.
	burnRateDivisor = 3.0
	// energyPerMole scales specific heat into released energy.
	energyPerMole = 2000.0
)

// BurnResult describes one combustion step.
type BurnResult struct {
	// Ignited is set when the autoignition scan started the fire this tick.
	Ignited bool
	// Reacted is set when reactants were consumed.
	Reacted  bool
	Energy   float64
	Consumed [NumSpecies]float64
}

// Burn runs one combustion step against the committed composition and writes
// its products and heat into the pending buffers.
func (m *Mixture) Burn() BurnResult {
	var res BurnResult

	if !m.burning {
		// The scan runs over every species even after a match.
		for i := range m.composition {
			ait := m.reg.props[i].AutoignitionTemp
			if ait > 0 && m.temperature > ait {
				if !m.burning {
					res.Ignited = true
				}
				m.burning = true
			}
		}
	}

	energy := 0.0
	if m.burning || m.exposed {
		fuel, oxidant := 0.0, 0.0
		for i, n := range m.composition {
			p := m.reg.props[i]
			if p.Combustible {
				fuel += n
			}
			if p.Oxidant {
				oxidant += n
			}
		}

		if oxidant > minReactant && fuel > minReactant && m.Pressure() > minBurnPressure {
			ratio := min(1, oxidant/fuel) / burnRateDivisor
			for i, n := range m.composition {
				s := Species(i)
				p := m.reg.props[i]
				amount := n * ratio
				passes := 0
				if p.Combustible {
					passes++
				}
				if p.Oxidant {
					passes++
				}
				if passes == 2 && m.policy.DualRoleOnce {
					passes = 1
				}
				for ; passes > 0; passes-- {
					m.AddPendingGas(s, -amount)
					m.AddPendingGas(CO2, amount)
					energy += p.SpecificHeat * energyPerMole * amount
					res.Consumed[s] += amount
				}
			}
		}
	}

	if energy > 0 {
		m.AddPendingTemperature(energy * m.HeatCapacity())
		m.burning = true
		res.Reacted = true
		res.Energy = energy
	} else {
		m.burning = false
	}
	return res
}
