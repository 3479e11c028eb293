package config

// ObservabilityConfig contains metrics configuration.
type ObservabilityConfig struct {
	// StatsdAddr is the UDP address of a statsd agent. Metrics are disabled
	// when empty.
	StatsdAddr string `env:"STATSD_ADDR"`

	// StatsdPrefix is prepended to every metric name.
	StatsdPrefix string `env:"STATSD_PREFIX" envDefault:"koherence"`
}
