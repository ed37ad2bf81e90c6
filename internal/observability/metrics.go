// Package observability provides Prometheus counters for the curation
// pipeline and an optional diagnostics HTTP server for long batch runs.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

// PipelineMetrics implements minimize.Metrics on top of Prometheus
// counters.
type PipelineMetrics struct {
	commits  *prometheus.CounterVec
	excluded *prometheus.CounterVec
	records  prometheus.Counter
	units    prometheus.Counter
}

// NewPipelineMetrics registers the pipeline counters with reg.
func NewPipelineMetrics(reg prometheus.Registerer) (*PipelineMetrics, error) {
	m := &PipelineMetrics{
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minfix_commits_processed_total",
			Help: "Commits processed, by final status.",
		}, []string{"status"}),
		excluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minfix_files_excluded_total",
			Help: "File pairs excluded before counting, by reason.",
		}, []string{"reason"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minfix_change_records_total",
			Help: "Change records emitted.",
		}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minfix_change_units_total",
			Help: "Change units counted across all emitted records.",
		}),
	}

	for _, collector := range []prometheus.Collector{m.commits, m.excluded, m.records, m.units} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register pipeline metrics: %w", err)
		}
	}

	return m, nil
}

// CommitProcessed counts one finished commit by status.
func (m *PipelineMetrics) CommitProcessed(status minimize.Status) {
	m.commits.WithLabelValues(string(status)).Inc()
}

// FileExcluded counts one excluded file pair by reason.
func (m *PipelineMetrics) FileExcluded(reason minimize.ExclusionReason) {
	m.excluded.WithLabelValues(string(reason)).Inc()
}

// RecordsEmitted counts the records and change units of one commit.
func (m *PipelineMetrics) RecordsEmitted(records, changeUnits int) {
	m.records.Add(float64(records))
	m.units.Add(float64(changeUnits))
}
