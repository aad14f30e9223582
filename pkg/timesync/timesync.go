package timesync

import (
	"context"
	"fmt"
	"time"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
	"github.com/kwgt/powerlog/pkg/common/validation"
	"github.com/kwgt/powerlog/pkg/metrics"
)

// Network joins and leaves the access point used to reach the time servers.
// On hosts with permanent connectivity use NopNetwork.
type Network interface {
	Join(ctx context.Context, creds Credentials) error
	Leave() error
}

// NopNetwork is a Network for hosts that are already connected.
type NopNetwork struct{}

// Join implements Network.
func (NopNetwork) Join(context.Context, Credentials) error { return nil }

// Leave implements Network.
func (NopNetwork) Leave() error { return nil }

// Clock applies the synchronized wall-clock time.
type Clock interface {
	Set(t time.Time) error
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func(time.Time) error

// Set implements Clock.
func (f ClockFunc) Set(t time.Time) error { return f(t) }

// TimeSource queries one time server and returns the corrected current time.
type TimeSource interface {
	Query(ctx context.Context, server string) (time.Time, error)
}

// Config holds configuration options for a Synchronizer.
type Config struct {
	// CredentialsPath is the access point credentials file. Ignored
	// when Network is NopNetwork and the file is absent only if empty.
	CredentialsPath string

	// Servers are tried in order until one answers.
	Servers []string

	// JoinTimeout bounds the access point join. Default: 20s.
	JoinTimeout time.Duration

	// QueryTimeout bounds a single time server query. Default: 5s.
	QueryTimeout time.Duration

	// Network joins the access point. Default: NopNetwork.
	Network Network

	// Clock receives the synchronized time. Required.
	Clock Clock

	// Source queries time servers. Default: NTP.
	Source TimeSource

	// Registry receives timesync metrics when non-nil.
	Registry *metrics.Registry
}

// DefaultConfig returns a default configuration with the stock Japanese
// public NTP servers.
func DefaultConfig() Config {
	return Config{
		Servers:      []string{"ntp.nict.jp", "ntp.jst.mfeed.ad.jp"},
		JoinTimeout:  20 * time.Second,
		QueryTimeout: 5 * time.Second,
		Network:      NopNetwork{},
	}
}

// Synchronizer performs one-shot wall-clock synchronization: join the
// network, query the first answering time server, apply the time, leave the
// network. It is independent of the recording core; run it before starting
// a session so sample timestamps are trustworthy.
type Synchronizer struct {
	config Config
}

// New creates a Synchronizer. A Clock is required; other collaborators fall
// back to defaults.
func New(config Config) (*Synchronizer, error) {
	if err := validation.ValidateNotNil("timesync", "clock", config.Clock); err != nil {
		return nil, err
	}
	if len(config.Servers) == 0 {
		config.Servers = DefaultConfig().Servers
	}
	if config.JoinTimeout <= 0 {
		config.JoinTimeout = DefaultConfig().JoinTimeout
	}
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = DefaultConfig().QueryTimeout
	}
	if config.Network == nil {
		config.Network = NopNetwork{}
	}
	if config.Source == nil {
		config.Source = NTPSource{Timeout: config.QueryTimeout}
	}
	return &Synchronizer{config: config}, nil
}

// Initialize runs one synchronization pass. Once the access point join
// succeeded the network is always left again, even on failure.
func (s *Synchronizer) Initialize(ctx context.Context) error {
	var creds Credentials
	if s.config.CredentialsPath != "" {
		var err error
		creds, err = LoadCredentials(s.config.CredentialsPath)
		if err != nil {
			s.countFailure("", "credentials")
			return err
		}
	}

	joinCtx, cancel := context.WithTimeout(ctx, s.config.JoinTimeout)
	defer cancel()
	if err := s.config.Network.Join(joinCtx, creds); err != nil {
		s.countFailure("", "join")
		return fmt.Errorf("%w: join access point: %v", plerrors.ErrResource, err)
	}
	defer func() { _ = s.config.Network.Leave() }()

	var lastErr error
	for _, server := range s.config.Servers {
		s.countAttempt(server)

		queryCtx, cancelQuery := context.WithTimeout(ctx, s.config.QueryTimeout)
		now, err := s.config.Source.Query(queryCtx, server)
		cancelQuery()
		if err != nil {
			s.countFailure(server, "query")
			lastErr = err
			continue
		}

		offset := time.Until(now)
		if err := s.config.Clock.Set(now); err != nil {
			s.countFailure(server, "set")
			return plerrors.NewOperationError("timesync", "Set", err).
				WithContext("applying time from " + server)
		}

		if s.config.Registry != nil {
			s.config.Registry.TimesyncOffset.WithLabelValues(server).Set(offset.Seconds())
		}
		return nil
	}

	return fmt.Errorf("%w: no time server reachable: %v", plerrors.ErrResource, lastErr)
}

func (s *Synchronizer) countAttempt(server string) {
	if s.config.Registry == nil {
		return
	}
	s.config.Registry.TimesyncAttempts.WithLabelValues(server).Inc()
}

func (s *Synchronizer) countFailure(server, stage string) {
	if s.config.Registry == nil {
		return
	}
	s.config.Registry.TimesyncFailures.WithLabelValues(server, stage).Inc()
}
