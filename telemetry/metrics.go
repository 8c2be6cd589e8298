package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes live simulation state to Prometheus. Each Metrics owns its
// registry so tests and multiple games in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	Generation       prometheus.Gauge
	Alive            prometheus.Gauge
	HighScore        prometheus.Gauge
	GenerationBest   prometheus.Gauge
	GenerationsTotal prometheus.Counter
	SavesTotal       *prometheus.CounterVec
	GenerationTicks  prometheus.Histogram
}

// NewMetrics creates and registers the simulation metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snakevo_generation",
			Help: "Current generation number.",
		}),
		Alive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snakevo_alive_agents",
			Help: "Agents alive after the last tick.",
		}),
		HighScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snakevo_high_score",
			Help: "Highest score reached in any generation.",
		}),
		GenerationBest: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snakevo_generation_best_score",
			Help: "Highest score reached in the current generation.",
		}),
		GenerationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snakevo_generations_total",
			Help: "Completed generation transitions.",
		}),
		SavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snakevo_controller_saves_total",
			Help: "Controller saves by outcome.",
		}, []string{"result"}),
		GenerationTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "snakevo_generation_ticks",
			Help:    "Ticks each generation lasted.",
			Buckets: prometheus.LinearBuckets(25, 25, 10),
		}),
	}
	m.registry.MustRegister(
		m.Generation, m.Alive, m.HighScore, m.GenerationBest,
		m.GenerationsTotal, m.SavesTotal, m.GenerationTicks,
	)
	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveTick updates the per-tick gauges. Safe on a nil receiver.
func (m *Metrics) ObserveTick(alive, generationBest, highScore int) {
	if m == nil {
		return
	}
	m.Alive.Set(float64(alive))
	m.GenerationBest.Set(float64(generationBest))
	m.HighScore.Set(float64(highScore))
}

// ObserveGeneration records a completed transition.
func (m *Metrics) ObserveGeneration(generation, ticks int) {
	if m == nil {
		return
	}
	m.Generation.Set(float64(generation))
	m.GenerationsTotal.Inc()
	m.GenerationTicks.Observe(float64(ticks))
}

// ObserveSaves counts controller saves by outcome.
func (m *Metrics) ObserveSaves(ok, failed int) {
	if m == nil {
		return
	}
	m.SavesTotal.WithLabelValues("ok").Add(float64(ok))
	m.SavesTotal.WithLabelValues("error").Add(float64(failed))
}
