// Package metrics exports simulation health as Prometheus series.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"atmos-ca/internal/sims/atmos"
)

// Recorder holds the tick and sync series for one simulation.
type Recorder struct {
	ticks         prometheus.Counter
	tickDuration  prometheus.Histogram
	ignitions     prometheus.Counter
	burningCells  prometheus.Gauge
	totalMoles    prometheus.Gauge
	meanTemp      prometheus.Gauge
	maxTemp       prometheus.Gauge
	maxPressure   prometheus.Gauge
	frames        prometheus.Counter
	deltas        prometheus.Counter
	publishErrors prometheus.Counter
	syncClients   prometheus.Gauge
}

// New registers the series with reg. Passing nil uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "atmos_ticks_total",
			Help: "Completed simulation ticks",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "atmos_tick_duration_seconds",
			Help:    "Wall time spent in one simulation tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		ignitions: f.NewCounter(prometheus.CounterOpts{
			Name: "atmos_ignitions_total",
			Help: "Cells that caught fire",
		}),
		burningCells: f.NewGauge(prometheus.GaugeOpts{
			Name: "atmos_burning_cells",
			Help: "Cells burning after the last tick",
		}),
		totalMoles: f.NewGauge(prometheus.GaugeOpts{
			Name: "atmos_total_moles",
			Help: "Moles of gas across the station",
		}),
		meanTemp: f.NewGauge(prometheus.GaugeOpts{
			Name: "atmos_mean_temperature_kelvin",
			Help: "Mean temperature of gas-carrying cells",
		}),
		maxTemp: f.NewGauge(prometheus.GaugeOpts{
			Name: "atmos_max_temperature_kelvin",
			Help: "Hottest cell temperature",
		}),
		maxPressure: f.NewGauge(prometheus.GaugeOpts{
			Name: "atmos_max_pressure",
			Help: "Highest cell pressure",
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "atmos_sync_frames_total",
			Help: "Delta frames published to sync clients",
		}),
		deltas: f.NewCounter(prometheus.CounterOpts{
			Name: "atmos_sync_deltas_total",
			Help: "Cell deltas published to sync clients",
		}),
		publishErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "atmos_sync_publish_errors_total",
			Help: "Frames that could not be queued",
		}),
		syncClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "atmos_sync_clients",
			Help: "Connected sync clients",
		}),
	}
}

// ObserveTick records the outcome of one tick.
func (r *Recorder) ObserveTick(st atmos.Stats, elapsed time.Duration) {
	r.ticks.Inc()
	r.tickDuration.Observe(elapsed.Seconds())
	r.ignitions.Add(float64(st.Ignitions))
	r.burningCells.Set(float64(st.BurningCells))
	r.totalMoles.Set(st.TotalMoles)
	r.meanTemp.Set(st.MeanTemperature)
	r.maxTemp.Set(st.MaxTemperature)
	r.maxPressure.Set(st.MaxPressure)
}

// ObserveFrame records a published frame.
func (r *Recorder) ObserveFrame(deltas, clients int, err error) {
	r.syncClients.Set(float64(clients))
	if err != nil {
		r.publishErrors.Inc()
		return
	}
	r.frames.Inc()
	r.deltas.Add(float64(deltas))
}
