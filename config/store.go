package config

import "time"

// StoreConfig contains referential data store configuration.
type StoreConfig struct {
	// Seed loads the development catalog on startup.
	Seed bool `env:"SEED" envDefault:"true"`

	// Simulated backend latency per operation kind.
	ListLatency   time.Duration `env:"LIST_LATENCY"   envDefault:"500ms"`
	GetLatency    time.Duration `env:"GET_LATENCY"    envDefault:"300ms"`
	CreateLatency time.Duration `env:"CREATE_LATENCY" envDefault:"600ms"`
	UpdateLatency time.Duration `env:"UPDATE_LATENCY" envDefault:"600ms"`
	DeleteLatency time.Duration `env:"DELETE_LATENCY" envDefault:"500ms"`
}

// Sanitize applies guardrails to store configuration values.
func (s *StoreConfig) Sanitize() {
	clamp := func(d *time.Duration) {
		if *d < 0 {
			*d = 0
		}
	}
	clamp(&s.ListLatency)
	clamp(&s.GetLatency)
	clamp(&s.CreateLatency)
	clamp(&s.UpdateLatency)
	clamp(&s.DeleteLatency)
}
