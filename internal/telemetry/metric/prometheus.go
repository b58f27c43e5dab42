package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "connectus"

// Outcome labels for CommandsTotal.
const (
	OutcomeSuccess     = "success"
	OutcomeParseError  = "parse_error"
	OutcomeExecError   = "exec_error"
	unknownCommandWord = "unknown"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	ParseFailures   *prometheus.CounterVec

	// Storage metrics
	SaveDuration prometheus.Histogram
	SaveFailures prometheus.Counter
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands entered, by keyword and outcome.",
		}, []string{"command", "outcome"}),

		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent executing a command, including persistence.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"command"}),

		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Rejected command lines, by error code.",
		}, []string{"code"}),

		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "save_duration_seconds",
			Help:      "Time spent persisting the address book.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),

		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "save_failures_total",
			Help:      "Failed attempts to persist the address book.",
		}),
	}

	r.registry.MustRegister(
		r.CommandsTotal,
		r.CommandDuration,
		r.ParseFailures,
		r.SaveDuration,
		r.SaveFailures,
		collectors.NewGoCollector(),
	)
	return r
}

// Registerer exposes the underlying registry for other components.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry for export.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveCommand records one executed command.
// An empty word is reported as "unknown".
func (r *Registry) ObserveCommand(word, outcome string, elapsed time.Duration) {
	word = orUnknown(word)
	r.CommandsTotal.WithLabelValues(word, outcome).Inc()
	if outcome == OutcomeSuccess {
		r.CommandDuration.WithLabelValues(word).Observe(elapsed.Seconds())
	}
}

// ObserveParseFailure records a rejected command line.
func (r *Registry) ObserveParseFailure(word, code string) {
	r.CommandsTotal.WithLabelValues(orUnknown(word), OutcomeParseError).Inc()
	r.ParseFailures.WithLabelValues(code).Inc()
}

// ObserveSave records one persistence attempt.
func (r *Registry) ObserveSave(elapsed time.Duration, err error) {
	if err != nil {
		r.SaveFailures.Inc()
		return
	}
	r.SaveDuration.Observe(elapsed.Seconds())
}

// WriteTextfile writes every registered metric to path in the
// Prometheus text format, for the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func orUnknown(word string) string {
	if word == "" {
		return unknownCommandWord
	}
	return word
}
