package gas

import (
	"errors"
	"fmt"
	"strings"
)

// Species enumerates the gas kinds tracked by every mixture.
type Species uint8

const (
	Oxygen Species = iota
	Nitrogen
	CO2
	Plasma
	NitrousOxide

	// NumSpecies sizes the dense per-species arrays.
	NumSpecies = int(NitrousOxide) + 1
)

var speciesNames = [NumSpecies]string{
	Oxygen:       "oxygen",
	Nitrogen:     "nitrogen",
	CO2:          "co2",
	Plasma:       "plasma",
	NitrousOxide: "nitrous_oxide",
}

var (
	// ErrMissingSpecies reports a registry without an entry for an enumerated species.
	ErrMissingSpecies = errors.New("gas: registry missing species")
	// ErrUnknownSpecies reports a species name outside the enumeration.
	ErrUnknownSpecies = errors.New("gas: unknown species")
)

// String returns the lower-case identifier used in config files and frames.
func (s Species) String() string {
	if int(s) < NumSpecies {
		return speciesNames[s]
	}
	return fmt.Sprintf("species(%d)", uint8(s))
}

// AllSpecies lists the enumeration in ordinal order.
func AllSpecies() []Species {
	out := make([]Species, NumSpecies)
	for i := range out {
		out[i] = Species(i)
	}
	return out
}

// ParseSpecies resolves a case-insensitive species identifier.
func ParseSpecies(name string) (Species, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "o2":
		return Oxygen, nil
	case "n2":
		return Nitrogen, nil
	case "carbon_dioxide":
		return CO2, nil
	case "n2o", "sleeping_agent":
		return NitrousOxide, nil
	case "toxins":
		return Plasma, nil
	}
	for i, n := range speciesNames {
		if n == key {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
}

// Properties holds the fixed physical constants of a species.
type Properties struct {
	MolarMass        float64 `yaml:"molar_mass"`
	SpecificHeat     float64 `yaml:"specific_heat"`
	AutoignitionTemp float64 `yaml:"autoignition_temp"`
	Combustible      bool    `yaml:"combustible"`
	Oxidant          bool    `yaml:"oxidant"`
}

// Registry is the read-only species table consulted by the simulation. It is
// safe to share between goroutines once built.
type Registry struct {
	props [NumSpecies]Properties
}

// NewRegistry builds a registry from the provided table. Every enumerated
// species must be present.
func NewRegistry(table map[Species]Properties) (*Registry, error) {
	r := &Registry{}
	for _, s := range AllSpecies() {
		p, ok := table[s]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSpecies, s)
		}
		r.props[s] = p
	}
	for s := range table {
		if int(s) >= NumSpecies {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSpecies, s)
		}
	}
	return r, nil
}

// Lookup returns the properties for s.
func (r *Registry) Lookup(s Species) Properties { return r.props[s] }

// DefaultRegistry returns the built-in game-balance table.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultTable())
	if err != nil {
		panic(err)
	}
	return r
}

func defaultTable() map[Species]Properties {
	return map[Species]Properties{
		Oxygen: {
			MolarMass:    0.032,
			SpecificHeat: 0.918,
			Oxidant:      true,
		},
		Nitrogen: {
			MolarMass:    0.028,
			SpecificHeat: 1.040,
		},
		CO2: {
			MolarMass:    0.044,
			SpecificHeat: 0.839,
		},
		Plasma: {
			MolarMass:        0.08,
			SpecificHeat:     2.5,
			AutoignitionTemp: 573.15,
			Combustible:      true,
		},
		NitrousOxide: {
			MolarMass:    0.044,
			SpecificHeat: 0.880,
			Oxidant:      true,
		},
	}
}
