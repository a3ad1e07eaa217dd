package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"atmos-ca/internal/core"
	"atmos-ca/internal/metrics"
	"atmos-ca/internal/netsync"
	"atmos-ca/internal/sims/atmos"
)

type runOptions struct {
	world         worldFlags
	steps         int
	tps           int
	listen        string
	syncThreshold float64
	syncRate      float64
	reportEvery   int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the station simulation headless",
		Long: `Run the station simulation without a window.

With --listen the process also serves Prometheus metrics on /metrics and
streams per-cell gas deltas to websocket clients on /sync.`,
		Example: `  atmos run --steps 600 --set leak_count=5
  atmos run --tps 20 --listen :8080 --species-file species.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			world, err := opts.world.build()
			if err != nil {
				return err
			}
			log := root.logger()
			world.SetLogger(log)
			if err := runSimulation(cmd.Context(), world, opts, log); err != nil {
				return err
			}
			st := world.Stats()
			fmt.Fprintf(cmd.OutOrStdout(),
				"tick %d: moles=%.2f burning=%d mean_temp=%.2fK max_temp=%.2fK max_pressure=%.2f\n",
				st.Tick, st.TotalMoles, st.BurningCells, st.MeanTemperature, st.MaxTemperature, st.MaxPressure)
			return nil
		},
	}
	opts.world.bind(cmd.Flags())
	cmd.Flags().IntVar(&opts.steps, "steps", 600, "ticks to simulate; 0 runs until interrupted")
	cmd.Flags().IntVar(&opts.tps, "tps", 0, "ticks per second; 0 runs unpaced")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "address for /metrics and /sync (disabled when empty)")
	cmd.Flags().Float64Var(&opts.syncThreshold, "sync-threshold", netsync.DefaultThreshold, "smallest per-species change sent to sync clients")
	cmd.Flags().Float64Var(&opts.syncRate, "sync-rate", 0, "maximum sync frames per second; 0 sends one per tick")
	cmd.Flags().IntVar(&opts.reportEvery, "report-every", 100, "log a summary every N ticks; 0 disables")
	return cmd
}

// runSimulation steps world until the tick budget is spent or ctx ends,
// serving metrics and sync frames alongside when a listen address is set.
func runSimulation(ctx context.Context, world *atmos.World, opts *runOptions, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	var (
		bcast   *netsync.Broadcaster
		tracker *netsync.Tracker
		srv     *http.Server
	)
	if opts.listen != "" {
		bcast = netsync.NewBroadcaster(log)
		defer bcast.Close()
		tracker = netsync.NewTracker(opts.syncThreshold)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/sync", bcast)
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		srv = &http.Server{Addr: opts.listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}

	g, gctx := errgroup.WithContext(ctx)
	if srv != nil {
		g.Go(func() error {
			log.Info("serving metrics and sync", slog.String("addr", opts.listen))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", opts.listen, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		if srv != nil {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = bcast.Close()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}
		return stepLoop(gctx, world, opts, rec, bcast, tracker, log)
	})
	return g.Wait()
}

func stepLoop(ctx context.Context, world *atmos.World, opts *runOptions, rec *metrics.Recorder,
	bcast *netsync.Broadcaster, tracker *netsync.Tracker, log *slog.Logger) error {
	pacer := core.NewFixedStep(opts.tps)
	var limiter *rate.Limiter
	if opts.syncRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.syncRate), 1)
	}
	for done := 0; opts.steps <= 0 || done < opts.steps; {
		if ctx.Err() != nil {
			return nil
		}
		if opts.tps > 0 && !pacer.ShouldStep() {
			time.Sleep(pacer.Until())
			continue
		}

		start := time.Now()
		world.Step()
		st := world.Stats()
		rec.ObserveTick(st, time.Since(start))

		// Skipped frames leave lastSent untouched, so the next frame carries the
		// accumulated change.
		if bcast != nil && (limiter == nil || limiter.Allow()) {
			frame := tracker.Collect(world)
			err := bcast.Publish(ctx, frame)
			rec.ObserveFrame(len(frame.Deltas), bcast.Clients(), err)
			if err != nil && ctx.Err() == nil {
				log.Warn("sync frame dropped", slog.Uint64("tick", st.Tick), slog.Any("error", err))
			}
		}

		done++
		if opts.reportEvery > 0 && done%opts.reportEvery == 0 {
			log.Info("tick",
				slog.Uint64("tick", st.Tick),
				slog.Float64("total_moles", st.TotalMoles),
				slog.Int("burning", st.BurningCells),
				slog.Float64("max_temp", st.MaxTemperature))
		}
	}
	return nil
}
