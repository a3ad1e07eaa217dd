package atmos

import (
	"strconv"

	"atmos-ca/internal/core"
	"atmos-ca/internal/gas"
)

// Parameters reports the current tunables grouped for presentation.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				floatParam("wall_chance", "Wall chance", params.WallChance),
				intParam("breach_count", "Hull breaches", params.BreachCount),
			},
		},
		{
			Name: "Atmosphere",
			Params: []core.Parameter{
				floatParam("factor", "Exchange factor", params.Factor),
				floatParam("air_oxygen", "Oxygen per cell", params.AirOxygen),
				floatParam("air_nitrogen", "Nitrogen per cell", params.AirNitrogen),
				floatParam("vent_ratio", "Vent ratio", params.VentRatio),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				intParam("leak_count", "Plasma leaks", params.LeakCount),
				floatParam("leak_moles", "Leak moles", params.LeakMoles),
				floatParam("leak_temperature", "Leak temperature", params.LeakTemperature),
				floatParam("spark_chance", "Spark chance", params.SparkChance),
			},
		},
		{
			Name: "Policy",
			Params: []core.Parameter{
				boolParam("reset_pending", "Reset pending on commit", w.cfg.Policy.Commit == gas.CommitResetPending),
				boolParam("dual_role_once", "Count dual-role species once", w.cfg.Policy.DualRoleOnce),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetFloatParameter adjusts a runtime tunable, clamping to its valid range.
// Seeding parameters take effect on the next Reset.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	switch key {
	case "factor":
		p.Factor = clampFloat(value, 1, 1e6)
	case "spark_chance":
		p.SparkChance = clampFloat(value, 0, 1)
	case "vent_ratio":
		p.VentRatio = clampFloat(value, 0, 1)
	case "wall_chance":
		p.WallChance = clampFloat(value, 0, 1)
	case "air_oxygen":
		p.AirOxygen = clampFloat(value, 0, 1e6)
	case "air_nitrogen":
		p.AirNitrogen = clampFloat(value, 0, 1e6)
	case "leak_moles":
		p.LeakMoles = clampFloat(value, 0, 1e6)
	case "leak_temperature":
		p.LeakTemperature = clampFloat(value, 0, 1e6)
	default:
		return false
	}
	return true
}

// SetBoolParameter toggles a gas policy switch on every mixture.
func (w *World) SetBoolParameter(key string, value bool) bool {
	policy := w.cfg.Policy
	switch key {
	case "reset_pending":
		if value {
			policy.Commit = gas.CommitResetPending
		} else {
			policy.Commit = gas.CommitCarryForward
		}
	case "dual_role_once":
		policy.DualRoleOnce = value
	default:
		return false
	}
	w.SetPolicy(policy)
	return true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
