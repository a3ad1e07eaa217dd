package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	HUD   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "atmos", Scale: 10, TPS: 20, Seed: 42, HUD: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the stats panel")
}
