package goACL

// Config carries engine-wide settings. Configure before [Builder.Build];
// the engine treats its config as immutable afterwards.
type Config struct {
	State   StateConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// StateConfig controls the state store wired by the builder.
type StateConfig struct {
	// RedisPrefix namespaces keys when the engine is built over a Redis
	// client. Defaults to "acl".
	RedisPrefix string
}

// AuditConfig controls the asynchronous audit trail.
type AuditConfig struct {
	Enabled bool
	// BufferSize bounds the dispatcher queue; events beyond it are dropped
	// and counted, never blocked on.
	BufferSize int
}

// MetricsConfig controls the in-process operation counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the configuration [New] starts from.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		State:   StateConfig{RedisPrefix: "acl"},
		Audit:   AuditConfig{Enabled: false, BufferSize: 256},
		Metrics: MetricsConfig{Enabled: true},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; clone exists so future reference
	// fields cannot alias caller state.
	return cfg
}
