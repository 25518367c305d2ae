package pipeline

// RunConfig is the immutable per-invocation configuration. It is built
// once at invocation start and only read afterwards; any stage may read
// it without synchronization.
type RunConfig struct {
	// Quit terminates the process once the pipeline settles successfully.
	// Interactive runs that start the serving interface set it to false.
	Quit bool

	// CleanDB discards any pre-existing database file before the pipeline
	// acquires a handle.
	CleanDB bool

	// Log enables per-stage progress output through the diagnostic sink.
	Log bool
}

// DefaultConfig returns the documented defaults: quit=true, cleanDb=true,
// log=true.
func DefaultConfig() RunConfig {
	return RunConfig{Quit: true, CleanDB: true, Log: true}
}
