// Package recorder implements the asynchronous, double-buffered logging core
// of the power monitor.
//
// A Recorder runs one recording session. Producers push measurement bytes
// through Push, Puts or PutString; the bytes accumulate in one of two
// fixed-size buffers. The moment a buffer fills, it is handed over a bounded
// command queue to a single background writer task, and appending continues
// in the other buffer. The writer task owns the storage resource: it opens
// it at session start, writes and durably syncs each full buffer, drives a
// tri-state status indicator around every write, and closes the resource at
// session end.
//
// The session is a strict one-way lifecycle:
//
//	Idle --Start--> Running --Finish--> Finished
//
// A finished Recorder cannot be restarted; create a new one per session.
//
// # Basic Usage
//
//	rec := recorder.New(recorder.DefaultConfig())
//	if err := rec.Start("/capture/power.dat"); err != nil {
//		log.Fatal(err)
//	}
//
//	for sample := range samples {
//		if _, err := rec.PutString(sample); err != nil {
//			log.Fatal(err)
//		}
//	}
//
//	if err := rec.Finish(); err != nil {
//		log.Fatal(err)
//	}
//	if err := rec.Err(); err != nil {
//		log.Printf("session had storage failures: %v", err)
//	}
//
// # Backpressure and failure
//
// The command queue holds Config.QueueDepth pending flushes. When storage is
// slower than the producers, a push that completes a buffer blocks until the
// writer task frees a slot. When a storage operation fails, the task records
// the error and keeps draining the queue without writing, so Finish always
// completes; the failure is visible on the Indicator and through Err.
//
// If producers outrun storage for long enough that the same plane is refilled
// while the task still reads it, recorded data is undefined. Size BufferSize
// and QueueDepth against the peak data rate.
//
// # Metrics
//
// NewWithMetrics wraps a session with Prometheus instrumentation:
//
//	rec := recorder.NewWithMetrics(recorder.DefaultConfig(), "capture")
package recorder
