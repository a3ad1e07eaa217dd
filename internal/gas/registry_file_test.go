package gas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fullTable = `
species:
  oxygen:
    molar_mass: 0.032
    specific_heat: 0.918
    oxidant: true
  n2:
    molar_mass: 0.028
    specific_heat: 1.04
  co2:
    molar_mass: 0.044
    specific_heat: 0.839
  toxins:
    molar_mass: 0.08
    specific_heat: 2.5
    autoignition_temp: 600
    combustible: true
  nitrous_oxide:
    molar_mass: 0.044
    specific_heat: 0.88
    oxidant: true
`

func TestNewRegistryMissingSpecies(t *testing.T) {
	table := defaultTable()
	delete(table, CO2)

	_, err := NewRegistry(table)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSpecies)
	assert.Contains(t, err.Error(), "co2")
}

func TestLoadRegistryYAML(t *testing.T) {
	reg, err := LoadRegistryYAML(strings.NewReader(fullTable))
	require.NoError(t, err)

	assert.Equal(t, 600.0, reg.Lookup(Plasma).AutoignitionTemp)
	assert.True(t, reg.Lookup(Plasma).Combustible)
	assert.True(t, reg.Lookup(Oxygen).Oxidant)
	assert.Equal(t, 1.04, reg.Lookup(Nitrogen).SpecificHeat)
}

func TestLoadRegistryYAMLErrors(t *testing.T) {
	t.Run("unknown name", func(t *testing.T) {
		doc := strings.Replace(fullTable, "  co2:\n", "  unused:\n", 1)
		_, err := LoadRegistryYAML(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrUnknownSpecies)
	})
	t.Run("empty document", func(t *testing.T) {
		_, err := LoadRegistryYAML(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMissingSpecies)
	})
	t.Run("duplicate alias", func(t *testing.T) {
		doc := fullTable + "  o2:\n    molar_mass: 0.032\n"
		_, err := LoadRegistryYAML(strings.NewReader(doc))
		assert.Error(t, err)
	})
	t.Run("unknown field", func(t *testing.T) {
		doc := strings.Replace(fullTable, "oxidant: true", "oxidizer: true", 1)
		_, err := LoadRegistryYAML(strings.NewReader(doc))
		assert.Error(t, err)
	})
}

func TestRegistryYAMLRoundTripThroughFile(t *testing.T) {
	out, err := yaml.Marshal(DefaultRegistry())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "species.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	reg, err := LoadRegistryFile(path)
	require.NoError(t, err)
	for _, s := range AllSpecies() {
		assert.Equal(t, DefaultRegistry().Lookup(s), reg.Lookup(s), s.String())
	}
}

func TestParseSpecies(t *testing.T) {
	s, err := ParseSpecies(" O2 ")
	require.NoError(t, err)
	assert.Equal(t, Oxygen, s)

	s, err = ParseSpecies("Nitrous_Oxide")
	require.NoError(t, err)
	assert.Equal(t, NitrousOxide, s)

	_, err = ParseSpecies("argon")
	assert.ErrorIs(t, err, ErrUnknownSpecies)
}
