/*
Package powerlog provides the data-logging core for an embedded AC power
monitor: an asynchronous double-buffered recorder that decouples a high-rate
measurement producer from slow, blocking storage.

Recording (pkg/recorder):
  - recorder: session state machine, double-buffered append, background
    writer task with status indication

Storage (pkg/sink):
  - file: truncate-and-create file storage with durable sync
  - redis: networked mirror sink for off-device capture

Clock setup (pkg/timesync):
  - one-shot NTP wall-clock initialization over a Wi-Fi access point,
    with optional cron-driven resync

Example usage:

	import "github.com/kwgt/powerlog/pkg/recorder"

	rec := recorder.New(recorder.DefaultConfig())
	if err := rec.Start("/capture/power.dat"); err != nil {
		log.Fatal(err)
	}

	flushed, _ := rec.PutString("sample,230.1,0.52\n")
	_ = flushed // true when the append crossed a buffer boundary

	_ = rec.Finish() // drains and closes the file
*/
package powerlog
