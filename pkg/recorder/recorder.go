package recorder

import (
	"sync"
	"time"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
	"github.com/kwgt/powerlog/pkg/common/validation"
	"github.com/kwgt/powerlog/pkg/sink"
)

// State identifies the lifecycle phase of a recording session.
type State int32

const (
	// StateIdle is the initial state; no session is in progress.
	StateIdle State = iota

	// StateRunning means a session is active and accepting data.
	StateRunning

	// StateFinished is terminal; a finished recorder cannot be reused.
	StateFinished
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Stats holds counters accumulated over a recording session.
type Stats struct {
	// BytesPushed is the number of bytes accepted into the buffer pair.
	BytesPushed int64

	// Flushes is the number of full buffers handed to the writer task.
	Flushes int64

	// BlockedSends is the number of flushes that blocked on a full
	// command queue before being accepted.
	BlockedSends int64

	// BytesWritten is the number of bytes the writer task has written
	// and synced to storage.
	BytesWritten int64

	// WriteErrors is the number of storage failures the writer task
	// has observed.
	WriteErrors int64
}

// Config holds configuration options for a Recorder.
type Config struct {
	// BufferSize is the capacity in bytes of each of the two append
	// planes. A flush is handed to the writer task exactly when the
	// active plane fills. Default: 8192.
	BufferSize int

	// QueueDepth is the capacity of the command queue between the
	// controller and the writer task. A producer that outruns storage
	// blocks once the queue holds this many pending flushes.
	// Default: 3.
	QueueDepth int

	// Storage opens the session's storage resource. Default: file
	// storage (create, truncate).
	Storage sink.Storage

	// Indicator receives write status transitions from the writer
	// task. Default: NopIndicator.
	Indicator Indicator

	// OnFlush is called by the writer task after each successful
	// write-and-sync with the payload size and elapsed time.
	OnFlush func(bytes int, duration time.Duration)

	// OnError is called by the writer task when a storage operation
	// fails.
	OnError func(error)

	// OnBlocked is called when a flush finds the command queue full
	// and has to wait.
	OnBlocked func()
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize: 8192,
		QueueDepth: 3,
	}
}

// Recorder drives one recording session: it accumulates pushed bytes into a
// pair of fixed-size buffers and hands each filled buffer to a background
// writer task over a bounded command queue. A Recorder is single-use; after
// Finish it stays in StateFinished.
//
// All exported methods are safe for concurrent use. Calls are serialized, so
// concurrent producers interleave at call granularity, never mid-payload.
type Recorder struct {
	mu     sync.Mutex
	config Config
	state  State

	buffers *bufferPair
	cmds    chan command
	task    *writerTask

	pushed  int64
	flushes int64
	blocked int64
}

// New creates a Recorder in StateIdle. Non-positive sizes and nil
// collaborators fall back to defaults.
func New(config Config) *Recorder {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.QueueDepth <= 0 {
		config.QueueDepth = DefaultConfig().QueueDepth
	}
	if config.Storage == nil {
		config.Storage = sink.NewFileStorage()
	}
	if config.Indicator == nil {
		config.Indicator = NopIndicator{}
	}

	return &Recorder{config: config, state: StateIdle}
}

// Start opens a recording session writing to path. The storage resource is
// created (truncated if it already exists) by the writer task. Start fails
// with a validation error for an empty path and with a state error unless
// the recorder is idle.
func (r *Recorder) Start(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validation.ValidateNotEmpty("recorder", "path", path); err != nil {
		return err
	}
	if r.state != StateIdle {
		return plerrors.NewStateError("recorder", "Start", r.state.String())
	}

	r.buffers = newBufferPair(r.config.BufferSize)
	r.cmds = make(chan command, r.config.QueueDepth)
	r.task = newWriterTask(path, r.config, r.cmds)
	go r.task.run()

	r.state = StateRunning
	return nil
}

// Push appends a single byte to the active buffer. It returns true when the
// byte filled the buffer and a flush was handed to the writer task. Push
// blocks while the command queue is full.
func (r *Recorder) Push(b byte) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return false, plerrors.NewStateError("recorder", "Push", r.state.String())
	}
	return r.pushByte(b)
}

// Puts appends a byte sequence. It returns true when at least one flush was
// handed to the writer task while consuming the sequence. On a queue failure
// it stops at the failed byte; bytes already appended stay in the session.
// An empty sequence is a no-op.
func (r *Recorder) Puts(p []byte) (bool, error) {
	flushes, err := r.puts(p)
	if err != nil {
		return false, err
	}
	return flushes > 0, nil
}

// puts appends p and reports the exact number of flushes handed to the
// writer task by this call. The count is taken under the session lock, so
// concurrent callers cannot claim each other's flushes.
func (r *Recorder) puts(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return 0, plerrors.NewStateError("recorder", "Puts", r.state.String())
	}

	flushes := 0
	for _, b := range p {
		f, err := r.pushByte(b)
		if err != nil {
			return flushes, err
		}
		if f {
			flushes++
		}
	}
	return flushes, nil
}

// PutString appends the bytes of s. See Puts.
func (r *Recorder) PutString(s string) (bool, error) {
	return r.Puts([]byte(s))
}

// Finish flushes the partially filled buffer (if any), waits for the writer
// task to drain the queue and close the storage resource, and moves the
// recorder to StateFinished. Storage failures during the session do not make
// Finish fail; inspect Err for them.
func (r *Recorder) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return plerrors.NewStateError("recorder", "Finish", r.state.String())
	}

	rem := r.buffers.remainder()
	if err := r.enqueue(exitCommand{data: rem}); err != nil {
		return err
	}
	r.waitForCompletion()

	r.state = StateFinished
	r.buffers = nil
	r.cmds = nil
	return nil
}

// State returns the current session state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the first storage failure observed by the writer task, or nil.
// It is meaningful while running and after Finish.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task == nil {
		return nil
	}
	return r.task.Err()
}

// BufferUsage returns the number of bytes held in the active buffer. It is
// zero outside a running session.
func (r *Recorder) BufferUsage() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buffers == nil {
		return 0
	}
	return r.buffers.len()
}

// Stats returns a snapshot of the session counters.
func (r *Recorder) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		BytesPushed:  r.pushed,
		Flushes:      r.flushes,
		BlockedSends: r.blocked,
	}
	if r.task != nil {
		written, errs := r.task.counters()
		stats.BytesWritten = written
		stats.WriteErrors = errs
	}
	return stats
}

// pushByte appends one byte and hands a full buffer to the writer task.
// Callers must hold r.mu and have checked the state.
func (r *Recorder) pushByte(b byte) (bool, error) {
	full, flushed := r.buffers.appendByte(b)
	r.pushed++

	if !flushed {
		return false, nil
	}
	if err := r.enqueue(flushCommand{data: full}); err != nil {
		return false, err
	}
	r.flushes++
	return true, nil
}

// enqueue sends a command to the writer task, blocking while the queue is
// full. Callers must hold r.mu.
func (r *Recorder) enqueue(cmd command) error {
	if r.cmds == nil {
		return plerrors.NewOperationError("recorder", "enqueue", plerrors.ErrQueue).
			WithContext("command queue not initialized")
	}

	select {
	case r.cmds <- cmd:
		return nil
	default:
	}

	r.blocked++
	if r.config.OnBlocked != nil {
		r.config.OnBlocked()
	}
	r.cmds <- cmd
	return nil
}

// waitForCompletion blocks until the writer task has drained the queue,
// closed the storage resource and terminated. The wait is unbounded; a
// bounded variant would hook in here.
func (r *Recorder) waitForCompletion() {
	<-r.task.done
}
