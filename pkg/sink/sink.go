package sink

// Sink is a destination for recorded bytes. Write must account for every
// byte it accepts; a short write is treated as a failure by the caller.
// Sync must not return until previously written bytes are durable.
type Sink interface {
	// Write writes len(p) bytes to the destination.
	Write(p []byte) (int, error)

	// Sync forces previously written bytes to durable storage.
	Sync() error

	// Close releases the destination. The sink is unusable afterwards.
	Close() error
}

// Storage opens sinks by path. The recorder owns the returned sink for the
// whole session and is the only writer.
type Storage interface {
	// Open creates or truncates the destination at path and returns a
	// write-only sink for it.
	Open(path string) (Sink, error)
}
