package recorder

import (
	"fmt"
	"sync"
	"time"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
	"github.com/kwgt/powerlog/pkg/sink"
)

// writerTask is the single background goroutine of a recording session. It
// owns the storage resource for the session's lifetime: it opens the sink,
// writes and syncs each payload received on the command queue, drives the
// indicator, and closes the sink on exit.
//
// After a storage failure the task records the error and keeps draining the
// queue without writing, so the controller's Finish never hangs on a dead
// resource.
type writerTask struct {
	path      string
	storage   sink.Storage
	indicator Indicator
	cmds      <-chan command
	done      chan struct{}

	onFlush func(int, time.Duration)
	onError func(error)

	mu           sync.Mutex
	err          error
	bytesWritten int64
	writeErrors  int64
}

func newWriterTask(path string, config Config, cmds <-chan command) *writerTask {
	return &writerTask{
		path:      path,
		storage:   config.Storage,
		indicator: config.Indicator,
		cmds:      cmds,
		done:      make(chan struct{}),
		onFlush:   config.OnFlush,
		onError:   config.OnError,
	}
}

// run processes commands until an exitCommand arrives. It closes the done
// channel last; the controller blocks on it in Finish.
func (t *writerTask) run() {
	s, err := t.storage.Open(t.path)
	if err != nil {
		t.fail(err)
	}

	for {
		cmd := <-t.cmds
		t.process(s, cmd)

		if _, exit := cmd.(exitCommand); exit {
			if s != nil {
				if cerr := s.Close(); cerr != nil {
					t.fail(fmt.Errorf("%w: close: %v", plerrors.ErrResource, cerr))
				}
			}
			close(t.done)
			return
		}
	}
}

// process writes one payload. Empty payloads are skipped, as is everything
// after the first failure.
func (t *writerTask) process(s sink.Sink, cmd command) {
	data := cmd.payload()
	if len(data) == 0 || t.Err() != nil {
		return
	}

	t.indicator.Set(StatusWriting)

	start := time.Now()
	err := writeAndSync(s, data)
	duration := time.Since(start)

	if err != nil {
		t.fail(err)
		t.indicator.Set(StatusError)
		return
	}

	t.mu.Lock()
	t.bytesWritten += int64(len(data))
	t.mu.Unlock()

	t.indicator.Set(StatusSuccess)

	if t.onFlush != nil {
		t.onFlush(len(data), duration)
	}
}

// Err returns the first recorded failure, or nil.
func (t *writerTask) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *writerTask) counters() (bytesWritten, writeErrors int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bytesWritten, t.writeErrors
}

func (t *writerTask) fail(err error) {
	t.mu.Lock()
	t.writeErrors++
	if t.err == nil {
		t.err = err
	}
	t.mu.Unlock()

	if t.onError != nil {
		t.onError(err)
	}
}

// writeAndSync writes the whole payload and makes it durable. A short write
// counts as a failure.
func writeAndSync(s sink.Sink, data []byte) error {
	n, err := s.Write(data)
	if err != nil {
		return fmt.Errorf("%w: write: %v", plerrors.ErrResource, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: short write (%d of %d bytes)", plerrors.ErrResource, n, len(data))
	}
	if err := s.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %v", plerrors.ErrResource, err)
	}
	return nil
}
