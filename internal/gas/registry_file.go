package gas

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// maxRegistryFileSize bounds species files read from disk.
const maxRegistryFileSize = 1 << 20

type registryFile struct {
	Species map[string]Properties `yaml:"species"`
}

// LoadRegistryYAML decodes a species table of the form
//
//	species:
//	  oxygen: {molar_mass: 0.032, specific_heat: 0.918, oxidant: true}
//	  ...
//
// Unknown names and missing species are both configuration errors.
func LoadRegistryYAML(r io.Reader) (*Registry, error) {
	var doc registryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("gas: decode species table: %w", err)
	}
	table := make(map[Species]Properties, len(doc.Species))
	for name, props := range doc.Species {
		s, err := ParseSpecies(name)
		if err != nil {
			return nil, err
		}
		if _, dup := table[s]; dup {
			return nil, fmt.Errorf("gas: species %s listed twice", s)
		}
		table[s] = props
	}
	return NewRegistry(table)
}

// LoadRegistryFile reads a YAML species table from path.
func LoadRegistryFile(path string) (*Registry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("gas: stat species file: %w", err)
	}
	if info.Size() > maxRegistryFileSize {
		return nil, fmt.Errorf("gas: species file %s exceeds %d bytes", path, maxRegistryFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gas: read species file: %w", err)
	}
	return LoadRegistryYAML(bytes.NewReader(data))
}

// MarshalYAML renders the registry in the format accepted by LoadRegistryYAML.
func (r *Registry) MarshalYAML() (any, error) {
	doc := registryFile{Species: make(map[string]Properties, NumSpecies)}
	for _, s := range AllSpecies() {
		doc.Species[s.String()] = r.props[s]
	}
	return doc, nil
}
