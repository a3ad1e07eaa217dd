// Package ui renders the text panel shown next to a running simulation.
package ui

import (
	"fmt"

	"atmos-ca/internal/core"
)

// Summarizer is implemented by sims that report live figures.
type Summarizer interface {
	Summary() []string
}

// Lines builds the panel text for sim: the name, run state, any live summary
// and the current parameter snapshot.
func Lines(sim core.Sim, paused bool) []string {
	state := "running"
	if paused {
		state = "paused"
	}
	out := []string{fmt.Sprintf("%s [%s]", sim.Name(), state)}

	if s, ok := sim.(Summarizer); ok {
		out = append(out, s.Summary()...)
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		for _, g := range p.Parameters().Groups {
			out = append(out, "", g.Name)
			for _, param := range g.Params {
				out = append(out, fmt.Sprintf("  %s: %s", param.Label, param.Value))
			}
		}
	}
	return out
}
