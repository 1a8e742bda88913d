package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the editor collectors.
type Metrics struct {
	Commands      *prometheus.CounterVec
	HistoryDepth  *prometheus.GaugeVec
	Elements      *prometheus.GaugeVec
	PersistErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecanvas_commands_total",
				Help: "Total number of editor commands applied",
			},
			[]string{"command", "changed"},
		),
		HistoryDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sitecanvas_history_depth",
				Help: "Number of undo snapshots per document",
			},
			[]string{"key"},
		),
		Elements: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sitecanvas_elements",
				Help: "Number of elements in the page tree per document",
			},
			[]string{"key"},
		),
		PersistErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecanvas_persist_errors_total",
				Help: "Total number of failed state reads and writes",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.Commands, m.HistoryDepth, m.Elements, m.PersistErrors)
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			m.Commands.WithLabelValues(e.Command, strconv.FormatBool(e.Changed)).Inc()
			m.HistoryDepth.WithLabelValues(e.Key).Set(float64(e.HistoryDepth))
			if e.New != nil {
				m.Elements.WithLabelValues(e.Key).Set(float64(tree.Count(e.New.Document.Elements)))
			}
		},
		OnPersistError: func(ctx context.Context, e *domain.PersistErrorEvent) {
			m.PersistErrors.WithLabelValues(e.Op).Inc()
		},
	}
}

// Forget drops the per-document series of key, e.g. after it was deleted.
func (m *Metrics) Forget(key string) {
	m.HistoryDepth.DeleteLabelValues(key)
	m.Elements.DeleteLabelValues(key)
}
