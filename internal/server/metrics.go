package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
)

type metrics struct {
	cycles      prometheus.Counter
	lost        prometheus.Counter
	annotations prometheus.Gauge
	units       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		cycles: f.NewCounter(prometheus.CounterOpts{
			Namespace: "reanchor",
			Name:      "cycles_total",
			Help:      "Remap cycles run on content updates.",
		}),
		lost: f.NewCounter(prometheus.CounterOpts{
			Namespace: "reanchor",
			Name:      "annotations_lost_total",
			Help:      "Annotations that could not be re-anchored after an update.",
		}),
		annotations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "reanchor",
			Name:      "annotations",
			Help:      "Annotations currently tracked across all files.",
		}),
		units: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reanchor",
			Name:      "units_total",
			Help:      "Classified units by edit operation.",
		}, []string{"op"}),
	}
}

func (m *metrics) observe(res *reanchor.Result) {
	m.cycles.Inc()
	m.lost.Add(float64(len(res.Lost)))
	m.annotations.Sub(float64(len(res.Lost)))
	m.units.WithLabelValues(reanchor.OpEqual.String()).Add(float64(res.Stats.Unchanged))
	m.units.WithLabelValues(reanchor.OpInsert.String()).Add(float64(res.Stats.Insertions))
	m.units.WithLabelValues(reanchor.OpDelete.String()).Add(float64(res.Stats.Deletions))
}
