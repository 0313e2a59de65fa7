// Package metrics holds the Prometheus counters recorded by a sync run.
// A CLI run is short lived, so metrics are written to a node_exporter
// textfile instead of being served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hxeb/hxebclass/pkg/errors"
)

// Metrics is a private registry with the sync counters. A nil *Metrics
// records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	coursesSynced  *prometheus.CounterVec
	teacherChanges *prometheus.CounterVec
	syncFailures   *prometheus.CounterVec
	runDuration    prometheus.Histogram
	lastRun        prometheus.Gauge
}

// New creates the sync metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		coursesSynced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxebclass_courses_synced_total",
				Help: "Courses processed by sync, by action",
			},
			[]string{"action"},
		),
		teacherChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxebclass_teacher_changes_total",
				Help: "Teacher membership changes applied by sync, by operation",
			},
			[]string{"op"},
		),
		syncFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxebclass_sync_failures_total",
				Help: "Courses that failed to sync, by error kind",
			},
			[]string{"kind"},
		),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hxebclass_sync_duration_seconds",
			Help:    "Duration of sync runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hxebclass_sync_last_run_timestamp_seconds",
			Help: "Unix time the last sync run finished",
		}),
	}
}

// CourseSynced counts one course outcome such as "created" or "updated".
func (m *Metrics) CourseSynced(action string) {
	if m == nil {
		return
	}
	m.coursesSynced.WithLabelValues(action).Inc()
}

// TeacherChanged counts one teacher "add" or "remove".
func (m *Metrics) TeacherChanged(op string) {
	if m == nil {
		return
	}
	m.teacherChanges.WithLabelValues(op).Inc()
}

// SyncFailed counts one failed course by error kind.
func (m *Metrics) SyncFailed(kind string) {
	if m == nil {
		return
	}
	m.syncFailures.WithLabelValues(kind).Inc()
}

// RunFinished records the duration of a finished run.
func (m *Metrics) RunFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
	m.lastRun.SetToCurrentTime()
}

// WriteTextfile writes the registry in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return errors.WrapIO("write", path, prometheus.WriteToTextfile(path, m.Registry))
}
