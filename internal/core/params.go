package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Find returns the parameter stored under key.
func (s ParameterSnapshot) Find(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterProvider exposes a parameter snapshot.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// FloatParameterSetter allows callers to update floating point parameters at
// runtime.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// BoolParameterSetter allows callers to toggle boolean parameters at runtime.
type BoolParameterSetter interface {
	SetBoolParameter(key string, value bool) bool
}
