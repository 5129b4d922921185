// Package metrics holds Prometheus gauges describing the last run,
// written to a textfile for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/qdm12/dynroute53/internal/models"
)

// Metric names use the dynroute53_ prefix.
const Namespace = "dynroute53"

type Metrics struct {
	registry             *prometheus.Registry
	buildInfo            *prometheus.GaugeVec
	lastRun              prometheus.Gauge
	duration             prometheus.Gauge
	success              prometheus.Gauge
	upToDate             prometheus.Gauge
	updateSubmitted      prometheus.Gauge
	propagationConfirmed prometheus.Gauge
}

func New(buildInfo models.BuildInformation) *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
		})
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "build_info",
			Help:      "Build information of the program, always 1.",
		}, []string{"version", "commit"}),
		lastRun:              gauge("last_run_timestamp_seconds", "Unix time of the start of the last run."),
		duration:             gauge("run_duration_seconds", "Duration of the last run in seconds."),
		success:              gauge("run_success", "1 if the last run succeeded, 0 otherwise."),
		upToDate:             gauge("record_up_to_date", "1 if the record already had the public IP address."),
		updateSubmitted:      gauge("update_submitted", "1 if the last run submitted a record update."),
		propagationConfirmed: gauge("propagation_confirmed", "1 if the update submitted was confirmed in sync."),
	}

	m.registry.MustRegister(m.buildInfo, m.lastRun, m.duration, m.success,
		m.upToDate, m.updateSubmitted, m.propagationConfirmed)
	m.buildInfo.WithLabelValues(buildInfo.Version, buildInfo.Commit).Set(1)

	return m
}

// Run is the outcome of a run to record.
type Run struct {
	Start                time.Time
	Duration             time.Duration
	Success              bool
	UpToDate             bool
	UpdateSubmitted      bool
	PropagationConfirmed bool
}

func (m *Metrics) Record(run Run) {
	m.lastRun.Set(float64(run.Start.Unix()))
	m.duration.Set(run.Duration.Seconds())
	m.success.Set(boolToFloat(run.Success))
	m.upToDate.Set(boolToFloat(run.UpToDate))
	m.updateSubmitted.Set(boolToFloat(run.UpdateSubmitted))
	m.propagationConfirmed.Set(boolToFloat(run.PropagationConfirmed))
}

// WriteTextfile atomically writes the metrics to the file at path.
func (m *Metrics) WriteTextfile(path string) (err error) {
	return prometheus.WriteToTextfile(path, m.registry)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
