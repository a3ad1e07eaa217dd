package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"atmos-ca/internal/gas"
	"atmos-ca/internal/sims/atmos"
)

// worldFlags are the options shared by every command that builds a station.
type worldFlags struct {
	width        int
	height       int
	seed         int64
	speciesFile  string
	overrides    []string
	resetPending bool
	dualRoleOnce bool
}

func (f *worldFlags) bind(fs *pflag.FlagSet) {
	def := atmos.DefaultConfig()
	fs.IntVar(&f.width, "width", def.Width, "station width in cells")
	fs.IntVar(&f.height, "height", def.Height, "station height in cells")
	fs.Int64Var(&f.seed, "seed", def.Seed, "seed for the station layout")
	fs.StringVar(&f.speciesFile, "species-file", "", "YAML species table (defaults to the built-in table)")
	fs.StringArrayVar(&f.overrides, "set", nil, "parameter override in key=value form (repeatable)")
	fs.BoolVar(&f.resetPending, "reset-pending", false, "zero pending composition after each commit")
	fs.BoolVar(&f.dualRoleOnce, "dual-role-once", false, "burn species flagged combustible and oxidant once per tick")
}

func (f *worldFlags) registry() (*gas.Registry, error) {
	if f.speciesFile == "" {
		return gas.DefaultRegistry(), nil
	}
	return gas.LoadRegistryFile(f.speciesFile)
}

// build returns a reset world. A bad species table aborts here.
func (f *worldFlags) build() (*atmos.World, error) {
	values := map[string]string{
		"w":    strconv.Itoa(f.width),
		"h":    strconv.Itoa(f.height),
		"seed": strconv.FormatInt(f.seed, 10),
	}
	for _, kv := range f.overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		values[key] = value
	}
	cfg := atmos.FromMap(values)
	if f.resetPending {
		cfg.Policy.Commit = gas.CommitResetPending
	}
	if f.dualRoleOnce {
		cfg.Policy.DualRoleOnce = true
	}

	reg, err := f.registry()
	if err != nil {
		return nil, fmt.Errorf("load species: %w", err)
	}
	cfg.Registry = reg

	world := atmos.NewWithConfig(cfg)
	world.Reset(cfg.Seed)
	return world, nil
}
