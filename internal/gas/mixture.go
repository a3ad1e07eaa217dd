// Package gas implements the per-cell atmosphere model: gas mixtures that
// exchange matter and heat with their neighbours and combust under threshold
// conditions.
//
// Every mutation lands in a pending buffer. Callers accumulate all diffusion
// and combustion for a tick first and only then Commit every mixture; there is
// no path that applies a delta to the committed state immediately.
package gas

const (
	// GasConstant is R in the ideal-gas pressure formula.
	GasConstant = 8.314
	// DefaultTemperature is room temperature in kelvin.
	DefaultTemperature = 293.15
	// DefaultVolume is the cell volume in cubic metres.
	DefaultVolume = 2.0
)

// CommitMode selects what happens to the pending composition on Commit.
type CommitMode uint8

const (
	// CommitCarryForward copies pending into the composition and leaves pending
	// untouched, so it stays the baseline for the next tick.
	CommitCarryForward CommitMode = iota
	// CommitResetPending zeroes pending after the copy. Drivers using this mode
	// must Rebase each mixture before the next accumulation phase.
	CommitResetPending
)

// Policy collects the behaviour switches of a mixture.
type Policy struct {
	Commit CommitMode
	// DualRoleOnce processes a species flagged both combustible and oxidant a
	// single time per burn instead of once per flag.
	DualRoleOnce bool
}

// Mixture is the gas state of one grid cell.
type Mixture struct {
	reg    *Registry
	policy Policy

	composition [NumSpecies]float64
	pending     [NumSpecies]float64
	lastSent    [NumSpecies]float64

	temperature      float64
	pendingTempDelta float64
	volume           float64

	burning bool
	exposed bool
}

// NewMixture returns an empty mixture at room temperature. reg must not be nil.
func NewMixture(reg *Registry) *Mixture {
	if reg == nil {
		panic("gas: NewMixture requires a species registry")
	}
	return &Mixture{
		reg:         reg,
		temperature: DefaultTemperature,
		volume:      DefaultVolume,
	}
}

// Registry returns the species table this mixture reads from.
func (m *Mixture) Registry() *Registry { return m.reg }

// Policy reports the active behaviour switches.
func (m *Mixture) Policy() Policy { return m.policy }

// SetPolicy replaces the behaviour switches.
func (m *Mixture) SetPolicy(p Policy) { m.policy = p }

// AddPendingGas adds amount moles of s to the next tick's composition. Negative
// amounts remove gas; the result floors at zero.
func (m *Mixture) AddPendingGas(s Species, amount float64) {
	m.pending[s] += amount
	if m.pending[s] < 0 {
		m.pending[s] = 0
	}
}

// AddPendingTemperature accumulates a temperature delta for the next commit.
func (m *Mixture) AddPendingTemperature(delta float64) {
	m.pendingTempDelta += delta
}

// Commit promotes the pending state to the current state and clears the
// one-tick exposure flag.
func (m *Mixture) Commit() {
	m.composition = m.pending
	if m.policy.Commit == CommitResetPending {
		m.pending = [NumSpecies]float64{}
	}
	m.temperature += m.pendingTempDelta
	m.pendingTempDelta = 0
	if m.temperature < 0 {
		m.temperature = 0
	}
	m.exposed = false
}

// Rebase copies the committed composition into pending. It is a no-op under
// CommitCarryForward, where the two already match after a commit.
func (m *Mixture) Rebase() {
	m.pending = m.composition
}

// Expose marks the mixture as touched by an ignition source for this tick.
func (m *Mixture) Expose() { m.exposed = true }

// Seed sets the moles of s in both the committed and pending state. It is
// meant for building initial conditions, not for the per-tick pass.
func (m *Mixture) Seed(s Species, moles float64) {
	if moles < 0 {
		moles = 0
	}
	m.composition[s] = moles
	m.pending[s] = moles
}

// SetTemperature overwrites the committed temperature. Like Seed it is a
// setup helper.
func (m *Mixture) SetTemperature(t float64) {
	if t < 0 {
		t = 0
	}
	m.temperature = t
}

// Moles returns the committed amount of s.
func (m *Mixture) Moles(s Species) float64 { return m.composition[s] }

// Pending returns the accumulated amount of s for the next commit.
func (m *Mixture) Pending(s Species) float64 { return m.pending[s] }

// PendingTemperature returns the accumulated temperature delta.
func (m *Mixture) PendingTemperature() float64 { return m.pendingTempDelta }

// Composition returns a copy of the committed composition.
func (m *Mixture) Composition() [NumSpecies]float64 { return m.composition }

// LastSent returns the snapshot recorded by the network layer.
func (m *Mixture) LastSent() [NumSpecies]float64 { return m.lastSent }

// SetLastSent records the composition last transmitted to clients. The
// simulation never writes it.
func (m *Mixture) SetLastSent(snapshot [NumSpecies]float64) { m.lastSent = snapshot }

// Temperature returns the committed temperature in kelvin.
func (m *Mixture) Temperature() float64 { return m.temperature }

// Volume returns the cell volume.
func (m *Mixture) Volume() float64 { return m.volume }

// SetVolume changes the cell volume.
func (m *Mixture) SetVolume(v float64) { m.volume = v }

// Burning reports whether the mixture is currently on fire.
func (m *Mixture) Burning() bool { return m.burning }

// Exposed reports whether an ignition source touched the mixture this tick.
func (m *Mixture) Exposed() bool { return m.exposed }

// TotalMoles sums the committed composition.
func (m *Mixture) TotalMoles() float64 {
	total := 0.0
	for _, n := range m.composition {
		total += n
	}
	return total
}

// Pressure applies P = nRT / V to the committed state.
func (m *Mixture) Pressure() float64 {
	return m.TotalMoles() * GasConstant * m.temperature / m.volume
}

// HeatCapacity sums moles times specific heat over all species.
func (m *Mixture) HeatCapacity() float64 {
	hc := 0.0
	for i, n := range m.composition {
		hc += n * m.reg.props[i].SpecificHeat
	}
	return hc
}

// TotalMass sums moles times molar mass over all species.
func (m *Mixture) TotalMass() float64 {
	mass := 0.0
	for i, n := range m.composition {
		mass += n * m.reg.props[i].MolarMass
	}
	return mass
}

// MassOf returns the mass of s in the committed composition.
func (m *Mixture) MassOf(s Species) float64 {
	return m.composition[s] * m.reg.props[s].MolarMass
}
