package simulation

import (
	"sync"

	"github.com/myrteametrics/goldenbatch-api/internal/metrics"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type simulationMetrics struct {
	healthScore  stdprometheus.Gauge
	violations   stdprometheus.Gauge
	cursor       stdprometheus.Gauge
	playing      stdprometheus.Gauge
	ticks        stdprometheus.Counter
	stateChanges *stdprometheus.CounterVec
}

var (
	_metricsOnce sync.Once
	_metrics     *simulationMetrics
)

// registeredMetrics registers the simulation metrics on first use, so the labels
// set by metrics.InitMetricLabels are taken into account
func registeredMetrics() *simulationMetrics {
	_metricsOnce.Do(func() {
		m := &simulationMetrics{
			healthScore: stdprometheus.NewGauge(stdprometheus.GaugeOpts{
				Namespace:   metrics.MetricNamespace,
				ConstLabels: metrics.MetricPrometheusLabels,
				Name:        "simulation_health_score",
				Help:        "Health score of the current visible window (0-100)",
			}),
			violations: stdprometheus.NewGauge(stdprometheus.GaugeOpts{
				Namespace:   metrics.MetricNamespace,
				ConstLabels: metrics.MetricPrometheusLabels,
				Name:        "simulation_violations",
				Help:        "Number of out-of-tunnel samples in the current visible window",
			}),
			cursor: stdprometheus.NewGauge(stdprometheus.GaugeOpts{
				Namespace:   metrics.MetricNamespace,
				ConstLabels: metrics.MetricPrometheusLabels,
				Name:        "simulation_cursor",
				Help:        "Current position of the simulation cursor",
			}),
			playing: stdprometheus.NewGauge(stdprometheus.GaugeOpts{
				Namespace:   metrics.MetricNamespace,
				ConstLabels: metrics.MetricPrometheusLabels,
				Name:        "simulation_playing",
				Help:        "1 when the simulation is playing, 0 otherwise",
			}),
			ticks: stdprometheus.NewCounter(stdprometheus.CounterOpts{
				Namespace:   metrics.MetricNamespace,
				ConstLabels: metrics.MetricPrometheusLabels,
				Name:        "simulation_ticks_total",
				Help:        "Number of applied simulation ticks",
			}),
			stateChanges: stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
				Namespace:   metrics.MetricNamespace,
				ConstLabels: metrics.MetricPrometheusLabels,
				Name:        "simulation_events_total",
				Help:        "Number of simulation events by type",
			}, []string{"event"}),
		}
		stdprometheus.MustRegister(m.healthScore, m.violations, m.cursor, m.playing, m.ticks, m.stateChanges)
		_metrics = m
	})
	return _metrics
}

func (m *simulationMetrics) observe(s Snapshot) {
	m.healthScore.Set(float64(s.Health.Score))
	m.violations.Set(float64(s.Health.ViolationCount))
	m.cursor.Set(float64(s.State.Cursor))
	if s.State.IsPlaying {
		m.playing.Set(1)
	} else {
		m.playing.Set(0)
	}
}
