package timesync

import (
	"context"
	"time"

	"github.com/beevik/ntp"
)

// NTPSource queries NTP servers. It is the default TimeSource.
type NTPSource struct {
	// Timeout bounds the NTP exchange. Default: 5s.
	Timeout time.Duration
}

// Query implements TimeSource. The context deadline, when earlier than
// Timeout, bounds the exchange instead.
func (s NTPSource) Query(ctx context.Context, server string) (time.Time, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}

	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return time.Time{}, err
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, err
	}

	return time.Now().Add(resp.ClockOffset), nil
}
