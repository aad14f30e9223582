package recorder

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kwgt/powerlog/pkg/metrics"
)

// MetricsRecorder wraps a Recorder with Prometheus instrumentation. It
// exposes the same session API and additionally updates the powerlog
// recorder metrics on every call.
type MetricsRecorder struct {
	*Recorder
	name     string
	registry *metrics.Registry
}

// NewWithMetrics creates a metrics-instrumented Recorder registered on the
// default registry. The name labels every metric of this session.
func NewWithMetrics(config Config, name string) *MetricsRecorder {
	return NewWithConfigAndMetrics(config, name, metrics.DefaultConfig())
}

// NewWithConfigAndMetrics creates a metrics-instrumented Recorder with a
// custom metrics configuration. With metrics disabled the wrapper degrades
// to plain delegation.
func NewWithConfigAndMetrics(config Config, name string, mc metrics.Config) *MetricsRecorder {
	var registry *metrics.Registry
	if mc.Enabled {
		registry = metrics.DefaultRegistry
		// the default registerer already backs DefaultRegistry; building a
		// second registry on it would collide
		if mc.Registry != nil && mc.Registry != prometheus.DefaultRegisterer {
			registry = metrics.NewRegistry(mc.Registry)
		}
	}

	if registry != nil {
		prevFlush := config.OnFlush
		config.OnFlush = func(n int, d time.Duration) {
			registry.RecorderBytesWritten.WithLabelValues(name).Add(float64(n))
			registry.RecorderSyncDuration.WithLabelValues(name).Observe(d.Seconds())
			if prevFlush != nil {
				prevFlush(n, d)
			}
		}

		prevError := config.OnError
		config.OnError = func(err error) {
			registry.RecorderWriteErrors.WithLabelValues(name).Inc()
			if prevError != nil {
				prevError(err)
			}
		}

		prevBlocked := config.OnBlocked
		config.OnBlocked = func() {
			registry.RecorderBlockedSends.WithLabelValues(name).Inc()
			if prevBlocked != nil {
				prevBlocked()
			}
		}
	}

	mr := &MetricsRecorder{
		Recorder: New(config),
		name:     name,
		registry: registry,
	}
	mr.setStateGauge(StateIdle)
	return mr
}

// Start opens the session and updates the state gauge.
func (mr *MetricsRecorder) Start(path string) error {
	err := mr.Recorder.Start(path)
	if err == nil {
		mr.setStateGauge(StateRunning)
	}
	return err
}

// Push appends one byte, counting the push and any resulting flush.
func (mr *MetricsRecorder) Push(b byte) (bool, error) {
	flushed, err := mr.Recorder.Push(b)
	if err != nil {
		return flushed, err
	}
	if mr.registry != nil {
		mr.registry.RecorderPushes.WithLabelValues(mr.name).Inc()
		if flushed {
			mr.registry.RecorderFlushes.WithLabelValues(mr.name, "full").Inc()
		}
		mr.updateUsageGauge()
	}
	return flushed, nil
}

// Puts appends a byte sequence, counting pushed bytes and the flushes this
// call produced.
func (mr *MetricsRecorder) Puts(p []byte) (bool, error) {
	flushes, err := mr.Recorder.puts(p)
	if mr.registry != nil {
		if err == nil && len(p) > 0 {
			mr.registry.RecorderPushes.WithLabelValues(mr.name).Add(float64(len(p)))
		}
		if flushes > 0 {
			mr.registry.RecorderFlushes.WithLabelValues(mr.name, "full").Add(float64(flushes))
		}
		mr.updateUsageGauge()
	}
	if err != nil {
		return false, err
	}
	return flushes > 0, nil
}

// PutString appends the bytes of s. See Puts.
func (mr *MetricsRecorder) PutString(s string) (bool, error) {
	return mr.Puts([]byte(s))
}

// Finish closes the session, counting the final flush when a partial buffer
// remained.
func (mr *MetricsRecorder) Finish() error {
	partial := mr.Recorder.BufferUsage() > 0
	err := mr.Recorder.Finish()
	if err != nil {
		return err
	}
	if mr.registry != nil {
		if partial {
			mr.registry.RecorderFlushes.WithLabelValues(mr.name, "final").Inc()
		}
		mr.updateUsageGauge()
	}
	mr.setStateGauge(StateFinished)
	return nil
}

func (mr *MetricsRecorder) setStateGauge(s State) {
	if mr.registry == nil {
		return
	}
	mr.registry.RecorderSessionState.WithLabelValues(mr.name).Set(float64(s))
}

func (mr *MetricsRecorder) updateUsageGauge() {
	mr.registry.RecorderBufferUsage.WithLabelValues(mr.name).Set(float64(mr.Recorder.BufferUsage()))
}
