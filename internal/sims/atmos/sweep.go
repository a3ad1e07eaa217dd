package atmos

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FireResult captures how a fire developed over one seeded run.
type FireResult struct {
	Seed            int64
	StepsSimulated  int
	PeakBurning     int
	PeakStep        int
	Ignitions       int
	LastBurningStep int
	MaxTemperature  float64
	FinalMoles      float64
}

// SweepPoint aggregates the runs made for one parameter value.
type SweepPoint struct {
	Value              float64
	Runs               []FireResult
	MeanPeakBurning    float64
	MeanIgnitions      float64
	MeanMaxTemperature float64
	MeanFinalMoles     float64
}

// FireOutcome runs a fresh station built from cfg for steps ticks and reports
// how the fire behaved.
func FireOutcome(cfg Config, steps int) FireResult {
	world := NewWithConfig(cfg)
	world.Reset(cfg.Seed)
	res := FireResult{Seed: cfg.Seed, MaxTemperature: world.Stats().MaxTemperature}
	for i := 1; i <= steps; i++ {
		world.Step()
		st := world.Stats()
		res.StepsSimulated = i
		res.Ignitions += st.Ignitions
		if st.BurningCells > res.PeakBurning {
			res.PeakBurning = st.BurningCells
			res.PeakStep = i
		}
		if st.BurningCells > 0 {
			res.LastBurningStep = i
		}
		if st.MaxTemperature > res.MaxTemperature {
			res.MaxTemperature = st.MaxTemperature
		}
		res.FinalMoles = st.TotalMoles
	}
	return res
}

// Sweep evaluates key at every value over seeds consecutive seeds starting at
// base.Seed, running at most workers stations at once. Points come back in the
// order of values.
func Sweep(ctx context.Context, base Config, key string, values []float64, seeds, steps, workers int) ([]SweepPoint, error) {
	if seeds <= 0 {
		seeds = 1
	}
	if workers <= 0 {
		workers = 1
	}

	configs := make([]Config, len(values))
	for i, v := range values {
		probe := NewWithConfig(base)
		if !probe.SetFloatParameter(key, v) {
			return nil, fmt.Errorf("atmos: unknown sweep parameter %q", key)
		}
		configs[i] = probe.Config()
	}

	runs := make([][]FireResult, len(values))
	for i := range runs {
		runs[i] = make([]FireResult, seeds)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range configs {
		for s := 0; s < seeds; s++ {
			cfg := configs[i]
			cfg.Seed = base.Seed + int64(s)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				runs[i][s] = FireOutcome(cfg, steps)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(values))
	for i, v := range values {
		p := SweepPoint{Value: v, Runs: runs[i]}
		n := float64(len(p.Runs))
		for _, r := range p.Runs {
			p.MeanPeakBurning += float64(r.PeakBurning) / n
			p.MeanIgnitions += float64(r.Ignitions) / n
			p.MeanMaxTemperature += r.MaxTemperature / n
			p.MeanFinalMoles += r.FinalMoles / n
		}
		points[i] = p
	}
	return points, nil
}
