package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
	"github.com/kwgt/powerlog/pkg/metrics"
)

// RedisConfig holds configuration for Redis-backed mirror sinks.
type RedisConfig struct {
	// Client is the Redis client used for all operations.
	Client redis.UniversalClient

	// KeyPrefix is prepended to the session path to form the Redis key.
	KeyPrefix string

	// Timeout bounds each Redis operation (defaults to 500ms).
	Timeout time.Duration

	// TTL is how long recording keys should live (0 = no expiry).
	TTL time.Duration

	// Registry counts opens and open failures when non-nil.
	Registry *metrics.Registry
}

// DefaultRedisConfig returns a default Redis sink configuration.
func DefaultRedisConfig(client redis.UniversalClient) RedisConfig {
	return RedisConfig{
		Client:    client,
		KeyPrefix: "powerlog:capture:",
		Timeout:   500 * time.Millisecond,
	}
}

// RedisStorage mirrors recordings into Redis string keys, one key per
// session path, appended in flush order. It is intended for off-device
// capture on a bench setup, not as the durable primary store.
type RedisStorage struct {
	config RedisConfig
}

// NewRedisStorage creates a RedisStorage with the given configuration.
func NewRedisStorage(config RedisConfig) (*RedisStorage, error) {
	if config.Client == nil {
		return nil, plerrors.NewValidationError("sink", "client", nil, "cannot be nil").
			WithHint("provide a connected redis client")
	}
	if config.Timeout <= 0 {
		config.Timeout = 500 * time.Millisecond
	}
	return &RedisStorage{config: config}, nil
}

// Open implements Storage. The existing key is deleted first so the new
// session starts from an empty value, mirroring truncate-on-open.
func (rs *RedisStorage) Open(path string) (Sink, error) {
	key := rs.config.KeyPrefix + path

	ctx, cancel := context.WithTimeout(context.Background(), rs.config.Timeout)
	defer cancel()

	err := rs.config.Client.Del(ctx, key).Err()
	if rs.config.Registry != nil {
		rs.config.Registry.SinkOpens.WithLabelValues("redis").Inc()
		if err != nil {
			rs.config.Registry.SinkOpenErrors.WithLabelValues("redis").Inc()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reset %s: %v", plerrors.ErrResource, key, err)
	}

	if rs.config.TTL > 0 {
		// The key does not exist yet; remember the TTL and apply it after
		// the first append.
		return &redisSink{config: rs.config, key: key, pendingTTL: rs.config.TTL}, nil
	}
	return &redisSink{config: rs.config, key: key}, nil
}

type redisSink struct {
	config     RedisConfig
	key        string
	pendingTTL time.Duration
	closed     bool
}

// Write implements Sink by appending to the session key.
func (s *redisSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, plerrors.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	if err := s.config.Client.Append(ctx, s.key, string(p)).Err(); err != nil {
		return 0, fmt.Errorf("%w: append %s: %v", plerrors.ErrResource, s.key, err)
	}

	if s.pendingTTL > 0 {
		if err := s.config.Client.Expire(ctx, s.key, s.pendingTTL).Err(); err != nil {
			return len(p), fmt.Errorf("%w: expire %s: %v", plerrors.ErrResource, s.key, err)
		}
		s.pendingTTL = 0
	}

	return len(p), nil
}

// Sync implements Sink. Redis acknowledges appends synchronously, so there
// is nothing buffered locally; a ping verifies the connection is still live.
func (s *redisSink) Sync() error {
	if s.closed {
		return plerrors.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	if err := s.config.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: sync %s: %v", plerrors.ErrResource, s.key, err)
	}
	return nil
}

// Close implements Sink. The key is left in place for later retrieval.
func (s *redisSink) Close() error {
	s.closed = true
	return nil
}
