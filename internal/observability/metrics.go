package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ramanasai/fitlog/internal/activity"
)

// LedgerMetrics exports ledger totals and mutation counts. It implements
// activity.Observer.
type LedgerMetrics struct {
	minutes   prometheus.Gauge
	calories  prometheus.Gauge
	steps     prometheus.Gauge
	mutations *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

var _ activity.Observer = (*LedgerMetrics)(nil)

// NewLedgerMetrics creates the collectors and registers them with reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		minutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fitlog",
			Subsystem: "ledger",
			Name:      "total_minutes",
			Help:      "Total workout minutes across all logged activities.",
		}),
		calories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fitlog",
			Subsystem: "ledger",
			Name:      "total_calories",
			Help:      "Estimated calories burned across all logged activities.",
		}),
		steps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fitlog",
			Subsystem: "ledger",
			Name:      "total_steps",
			Help:      "Estimated steps across all logged activities.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlog",
			Subsystem: "ledger",
			Name:      "mutations_total",
			Help:      "Ledger mutations by operation.",
		}, []string{"op"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlog",
			Subsystem: "ledger",
			Name:      "fallbacks_total",
			Help:      "Records measured with a default value, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.minutes, m.calories, m.steps, m.mutations, m.fallbacks)
	return m
}

func (m *LedgerMetrics) ObserveMutation(op activity.Op, _ activity.Record) {
	m.mutations.WithLabelValues(string(op)).Inc()
}

func (m *LedgerMetrics) ObserveFallback(kind activity.Fallback, _ activity.Record) {
	m.fallbacks.WithLabelValues(string(kind)).Inc()
}

func (m *LedgerMetrics) ObserveTotals(t activity.Totals) {
	m.minutes.Set(float64(t.Minutes))
	m.calories.Set(float64(t.Calories))
	m.steps.Set(float64(t.Steps))
}
