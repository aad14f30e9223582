// Package metrics provides Prometheus instrumentation for powerlog components.
//
// The metrics package provides automatic instrumentation for:
//   - Recording sessions (pushes, flushes, bytes written, write errors)
//   - Backpressure (flushes blocked on a full command queue)
//   - Storage sinks (opens, open failures)
//   - Wall-clock synchronization (attempts, failures, measured offset)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructor:
//
//	rec := recorder.NewWithMetrics(recorder.DefaultConfig(), "capture")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	rec := recorder.NewWithConfigAndMetrics(recorder.DefaultConfig(), "capture", config)
//
// # Available Metrics
//
// ## Recorder Metrics
//
//   - powerlog_recorder_pushes_total: Bytes pushed into the active buffer
//   - powerlog_recorder_flushes_total: Buffer flushes handed to the writer task
//   - powerlog_recorder_bytes_written_total: Bytes written to the storage resource
//   - powerlog_recorder_write_errors_total: Storage write or sync failures
//   - powerlog_recorder_blocked_sends_total: Flushes that blocked on a full queue
//   - powerlog_recorder_buffer_usage_bytes: Bytes held in the active buffer
//   - powerlog_recorder_session_state: Session state (0=idle, 1=running, 2=finished)
//   - powerlog_recorder_sync_duration_seconds: Write plus durable sync time per flush
//
// ## Sink Metrics
//
//   - powerlog_sink_opens_total: Storage resource opens
//   - powerlog_sink_open_errors_total: Failed storage resource opens
//
// ## Timesync Metrics
//
//   - powerlog_timesync_attempts_total: Wall-clock synchronization attempts
//   - powerlog_timesync_failures_total: Failed synchronization attempts by stage
//   - powerlog_timesync_clock_offset_seconds: Last measured NTP offset
//
// # Labels
//
//   - recorder_name: User-provided name for the recording session
//   - kind: Flush kind ("full" for boundary flushes, "final" for the Finish remainder)
//   - storage_type: Sink backend ("file" or "redis")
//   - server: NTP server host
//   - stage: Failure stage ("credentials", "join", "query", "set")
package metrics
