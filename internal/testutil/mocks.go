package testutil

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

// MockClock is a settable clock for testing wall-clock synchronization. It
// satisfies the timesync Clock contract: Set applies a time, records it, and
// can be made to fail.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	sets   []time.Time
	setErr error
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set applies t as the current time and records it, or returns the injected
// error without applying anything.
func (m *MockClock) Set(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.now = t
	m.sets = append(m.sets, t)
	return nil
}

// Sets returns a copy of the times applied through Set, in order.
func (m *MockClock) Sets() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Time, len(m.sets))
	copy(out, m.sets)
	return out
}

// SetError makes subsequent Set calls fail with err.
func (m *MockClock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// MockSink is a test storage sink that can simulate various write and sync
// conditions including delays, errors, short writes, and call counting. It
// satisfies the sink.Sink interface.
type MockSink struct {
	buf         *bytes.Buffer
	mu          sync.Mutex
	writeDelay  time.Duration
	errorOnNth  int
	shortOnNth  int
	writeCount  int
	syncCount   int
	closeCount  int
	shouldError bool
	err         error
	syncErr     error
}

// NewMockSink creates a new MockSink.
func NewMockSink() *MockSink {
	return &MockSink{
		buf: &bytes.Buffer{},
	}
}

// Write records p with configurable failure behavior.
func (ms *MockSink) Write(p []byte) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.writeCount++

	if ms.writeDelay > 0 {
		time.Sleep(ms.writeDelay)
	}

	if ms.shouldError {
		return 0, ms.err
	}

	if ms.errorOnNth > 0 && ms.writeCount == ms.errorOnNth {
		return 0, errors.New("simulated write error")
	}

	if ms.shortOnNth > 0 && ms.writeCount == ms.shortOnNth && len(p) > 0 {
		n := len(p) / 2
		ms.buf.Write(p[:n])
		return n, nil
	}

	return ms.buf.Write(p)
}

// Sync counts sync calls and returns the configured sync error, if any.
func (ms *MockSink) Sync() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.syncCount++
	return ms.syncErr
}

// Close counts close calls.
func (ms *MockSink) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.closeCount++
	return nil
}

// Bytes returns a copy of the current buffer contents.
func (ms *MockSink) Bytes() []byte {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]byte, ms.buf.Len())
	copy(out, ms.buf.Bytes())
	return out
}

// String returns the current buffer contents.
func (ms *MockSink) String() string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.buf.String()
}

// Len returns the current buffer length.
func (ms *MockSink) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.buf.Len()
}

// WriteCount returns the number of Write calls.
func (ms *MockSink) WriteCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.writeCount
}

// SyncCount returns the number of Sync calls.
func (ms *MockSink) SyncCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.syncCount
}

// CloseCount returns the number of Close calls.
func (ms *MockSink) CloseCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.closeCount
}

// SetWriteDelay configures a delay for each write operation.
func (ms *MockSink) SetWriteDelay(delay time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.writeDelay = delay
}

// SetErrorOnNth configures the sink to error on the nth write.
func (ms *MockSink) SetErrorOnNth(n int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errorOnNth = n
}

// SetShortWriteOnNth configures the sink to report a short write on the nth
// write.
func (ms *MockSink) SetShortWriteOnNth(n int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.shortOnNth = n
}

// SetAlwaysError configures the sink to always return the given error.
func (ms *MockSink) SetAlwaysError(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.shouldError = true
	ms.err = err
}

// SetSyncError configures Sync to return the given error.
func (ms *MockSink) SetSyncError(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.syncErr = err
}

// Reset clears the buffer and resets counters.
func (ms *MockSink) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.buf.Reset()
	ms.writeCount = 0
	ms.syncCount = 0
	ms.closeCount = 0
	ms.shouldError = false
	ms.errorOnNth = 0
	ms.shortOnNth = 0
	ms.writeDelay = 0
	ms.err = nil
	ms.syncErr = nil
}
