package recorder

// Status is the tri-state signal driven before and after each physical flush.
type Status int

const (
	// StatusWriting is set just before the task writes a buffer.
	StatusWriting Status = iota

	// StatusSuccess is set after a buffer was written and synced.
	StatusSuccess

	// StatusError is set after a write or sync failure.
	StatusError
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusWriting:
		return "writing"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Indicator receives status transitions from the writer task. It is purely
// observational; nothing it does feeds back into the recording flow. On the
// device this drives the front-panel LED.
type Indicator interface {
	Set(Status)
}

// IndicatorFunc adapts a function to the Indicator interface.
type IndicatorFunc func(Status)

// Set implements Indicator.
func (f IndicatorFunc) Set(s Status) { f(s) }

// NopIndicator discards all status transitions. It is the default when no
// indicator hardware is attached.
type NopIndicator struct{}

// Set implements Indicator.
func (NopIndicator) Set(Status) {}
