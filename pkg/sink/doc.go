/*
Package sink defines the storage boundary of the recording core and provides
its two built-in backends.

A Storage opens a Sink per recording session; the writer task owns the sink
exclusively for the session's lifetime. Write is all-or-nothing from the
recorder's point of view: any short write is treated as a failure. Sync means
durable before continuing.

# File storage

	storage := sink.NewFileStorage()
	s, err := storage.Open("/capture/power.dat") // create + truncate

# Redis mirror

RedisStorage appends each flushed buffer to a Redis key, giving a networked
copy of the capture for bench setups:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	storage, err := sink.NewRedisStorage(sink.DefaultRedisConfig(client))
	s, err := storage.Open("session-42")

The Redis backend is a mirror, not a durable primary store; Sync only
verifies the connection is live.
*/
package sink
