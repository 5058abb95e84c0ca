package persistence

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/ports"
)

// Metrics counts snapshot operations per sink
type Metrics struct {
	saves        *prometheus.CounterVec
	saveDuration *prometheus.HistogramVec
	loads        *prometheus.CounterVec
}

// NewMetrics creates and registers the snapshot collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "silkmarket_snapshot_saves_total",
				Help: "Total number of dataset snapshot writes",
			},
			[]string{"sink", "result"},
		),
		saveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "silkmarket_snapshot_save_duration_seconds",
				Help:    "Dataset snapshot write duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sink"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "silkmarket_snapshot_loads_total",
				Help: "Total number of dataset snapshot reads",
			},
			[]string{"sink", "result"},
		),
	}

	reg.MustRegister(m.saves, m.saveDuration, m.loads)
	return m
}

// Instrumented records metrics around another sink
type Instrumented struct {
	inner   ports.SnapshotStore
	metrics *Metrics
}

// Instrument wraps inner so every Load and Save is counted
func Instrument(inner ports.SnapshotStore, metrics *Metrics) *Instrumented {
	return &Instrumented{inner: inner, metrics: metrics}
}

func (i *Instrumented) Name() string { return i.inner.Name() }

func (i *Instrumented) Load(ctx context.Context) (*entities.Dataset, error) {
	data, err := i.inner.Load(ctx)
	i.metrics.loads.WithLabelValues(i.inner.Name(), result(err)).Inc()
	return data, err
}

func (i *Instrumented) Save(ctx context.Context, data *entities.Dataset) error {
	start := time.Now()
	err := i.inner.Save(ctx, data)
	i.metrics.saveDuration.WithLabelValues(i.inner.Name()).Observe(time.Since(start).Seconds())
	i.metrics.saves.WithLabelValues(i.inner.Name(), result(err)).Inc()
	return err
}

func (i *Instrumented) Close() error { return i.inner.Close() }

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
