// Package netsync turns committed gas state into per-cell delta frames and
// fans them out to websocket clients.
package netsync

import (
	"encoding/json"
	"math"

	"atmos-ca/internal/core"
	"atmos-ca/internal/gas"
)

// DefaultThreshold is the smallest per-species change worth transmitting.
const DefaultThreshold = 0.01

// Source is the read side of a grid of mixtures.
type Source interface {
	Size() core.Size
	Tick() uint64
	Mixtures() []*gas.Mixture
}

// Delta carries the new amounts of every species that moved in one cell.
type Delta struct {
	X           int                `json:"x"`
	Y           int                `json:"y"`
	Moles       map[string]float64 `json:"moles"`
	Temperature float64            `json:"temperature"`
	Burning     bool               `json:"burning,omitempty"`
}

// Frame is the payload sent to clients after a tick.
type Frame struct {
	Tick   uint64  `json:"tick"`
	Deltas []Delta `json:"deltas"`
}

// JSON encodes the frame.
func (f Frame) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// Tracker compares each mixture against its last transmitted snapshot.
type Tracker struct {
	Threshold float64
}

// NewTracker returns a tracker using threshold, or DefaultThreshold when it is
// not positive.
func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{Threshold: threshold}
}

// Collect builds a frame of every cell whose composition moved by more than the
// threshold since it was last sent, and records the sent state.
func (t *Tracker) Collect(src Source) Frame {
	size := src.Size()
	frame := Frame{Tick: src.Tick()}
	for idx, m := range src.Mixtures() {
		current := m.Composition()
		sent := m.LastSent()
		var moles map[string]float64
		for i := range current {
			if math.Abs(current[i]-sent[i]) <= t.Threshold {
				continue
			}
			if moles == nil {
				moles = make(map[string]float64, gas.NumSpecies)
			}
			moles[gas.Species(i).String()] = current[i]
			sent[i] = current[i]
		}
		if moles == nil {
			continue
		}
		m.SetLastSent(sent)
		frame.Deltas = append(frame.Deltas, Delta{
			X:           idx % size.W,
			Y:           idx / size.W,
			Moles:       moles,
			Temperature: m.Temperature(),
			Burning:     m.Burning(),
		})
	}
	return frame
}
