package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shelters"

// Metrics implementa shelters.Recorder sobre un registry propio
// (no el global, para que los tests no compartan estado).
type Metrics struct {
	Registry *prometheus.Registry

	Adoptions    *prometheus.CounterVec
	AdoptionFees *prometheus.CounterVec
	Moves        *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	Saves        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Adoptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adoptions_total",
			Help:      "Adoptions completed through the adopt operation.",
		}, []string{"shelter"}),
		AdoptionFees: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adoption_fees_total",
			Help:      "Adoption fees collected.",
		}, []string{"shelter"}),
		Moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Animals moved between shelters.",
		}, []string{"from", "to"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_rejections_total",
			Help:      "Operations rejected by domain validation.",
		}, []string{"op", "reason"}),
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_saves_total",
			Help:      "Whole-dataset saves by result.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Adoptions,
		m.AdoptionFees,
		m.Moves,
		m.Rejections,
		m.Saves,
	)
	return m
}

func (m *Metrics) Adopted(shelter string, fee int) {
	m.Adoptions.WithLabelValues(shelter).Inc()
	m.AdoptionFees.WithLabelValues(shelter).Add(float64(fee))
}

func (m *Metrics) Moved(from, to string) {
	m.Moves.WithLabelValues(from, to).Inc()
}

func (m *Metrics) Failed(op, reason string) {
	m.Rejections.WithLabelValues(op, reason).Inc()
}

func (m *Metrics) Saved(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Saves.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
