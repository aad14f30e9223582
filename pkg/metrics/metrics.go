// Package metrics provides Prometheus instrumentation for powerlog components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for powerlog components.
type Registry struct {
	// Recorder Metrics
	RecorderPushes       *prometheus.CounterVec
	RecorderFlushes      *prometheus.CounterVec
	RecorderBytesWritten *prometheus.CounterVec
	RecorderWriteErrors  *prometheus.CounterVec
	RecorderBlockedSends *prometheus.CounterVec
	RecorderBufferUsage  *prometheus.GaugeVec
	RecorderSessionState *prometheus.GaugeVec
	RecorderSyncDuration *prometheus.HistogramVec

	// Sink Metrics
	SinkOpens      *prometheus.CounterVec
	SinkOpenErrors *prometheus.CounterVec

	// Timesync Metrics
	TimesyncAttempts *prometheus.CounterVec
	TimesyncFailures *prometheus.CounterVec
	TimesyncOffset   *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by powerlog components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Recorder Metrics
		RecorderPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "pushes_total",
				Help:      "Total number of bytes pushed into the active buffer",
			},
			[]string{"recorder_name"},
		),

		RecorderFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "flushes_total",
				Help:      "Total number of buffer flushes handed to the writer task",
			},
			[]string{"recorder_name", "kind"},
		),

		RecorderBytesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "bytes_written_total",
				Help:      "Total bytes written to the storage resource",
			},
			[]string{"recorder_name"},
		),

		RecorderWriteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "write_errors_total",
				Help:      "Total number of storage write or sync failures",
			},
			[]string{"recorder_name"},
		),

		RecorderBlockedSends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "blocked_sends_total",
				Help:      "Total number of flushes that blocked on a full command queue",
			},
			[]string{"recorder_name"},
		),

		RecorderBufferUsage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "buffer_usage_bytes",
				Help:      "Bytes currently held in the active buffer",
			},
			[]string{"recorder_name"},
		),

		RecorderSessionState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "session_state",
				Help:      "Current session state (0=idle, 1=running, 2=finished)",
			},
			[]string{"recorder_name"},
		),

		RecorderSyncDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "powerlog",
				Subsystem: "recorder",
				Name:      "sync_duration_seconds",
				Help:      "Time spent in write plus durable sync per flush",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"recorder_name"},
		),

		// Sink Metrics
		SinkOpens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "sink",
				Name:      "opens_total",
				Help:      "Total number of storage resource opens",
			},
			[]string{"storage_type"},
		),

		SinkOpenErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "sink",
				Name:      "open_errors_total",
				Help:      "Total number of failed storage resource opens",
			},
			[]string{"storage_type"},
		),

		// Timesync Metrics
		TimesyncAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "timesync",
				Name:      "attempts_total",
				Help:      "Total number of wall-clock synchronization attempts",
			},
			[]string{"server"},
		),

		TimesyncFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "powerlog",
				Subsystem: "timesync",
				Name:      "failures_total",
				Help:      "Total number of failed wall-clock synchronization attempts",
			},
			[]string{"server", "stage"},
		),

		TimesyncOffset: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "powerlog",
				Subsystem: "timesync",
				Name:      "clock_offset_seconds",
				Help:      "Last measured offset between local and NTP time",
			},
			[]string{"server"},
		),
	}
}
