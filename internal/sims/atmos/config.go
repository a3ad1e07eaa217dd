package atmos

import (
	"strconv"

	"atmos-ca/internal/gas"
)

// Params holds tunable rates and seeding amounts for the station sim.
type Params struct {
	Factor float64

	WallChance  float64
	BreachCount int

	AirOxygen   float64
	AirNitrogen float64

	LeakCount       int
	LeakMoles       float64
	LeakTemperature float64

	SparkChance float64
	VentRatio   float64
}

// Config controls the station dimensions, seeding and gas policy.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
	Policy gas.Policy

	// Registry supplies species constants; nil selects gas.DefaultRegistry.
	Registry *gas.Registry
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  64,
		Height: 48,
		Seed:   1337,
		Params: Params{
			Factor:          gas.DefaultFactor,
			WallChance:      0.04,
			BreachCount:     0,
			AirOxygen:       18.1,
			AirNitrogen:     65.0,
			LeakCount:       3,
			LeakMoles:       20,
			LeakTemperature: 600,
			SparkChance:     0,
			VentRatio:       1,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 1 {
			c.Params.Factor = parsed
		}
	}
	if v, ok := cfg["wall_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.WallChance = parsed
		}
	}
	if v, ok := cfg["breach_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.BreachCount = parsed
		}
	}
	if v, ok := cfg["air_oxygen"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.AirOxygen = parsed
		}
	}
	if v, ok := cfg["air_nitrogen"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.AirNitrogen = parsed
		}
	}
	if v, ok := cfg["leak_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.LeakCount = parsed
		}
	}
	if v, ok := cfg["leak_moles"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.LeakMoles = parsed
		}
	}
	if v, ok := cfg["leak_temperature"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.LeakTemperature = parsed
		}
	}
	if v, ok := cfg["spark_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SparkChance = parsed
		}
	}
	if v, ok := cfg["vent_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.VentRatio = parsed
		}
	}
	if v, ok := cfg["reset_pending"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil && parsed {
			c.Policy.Commit = gas.CommitResetPending
		}
	}
	if v, ok := cfg["dual_role_once"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Policy.DualRoleOnce = parsed
		}
	}
	return c
}
