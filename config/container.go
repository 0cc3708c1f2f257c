package config

import "time"

// Container component container config struct
type Container struct {
	InitTimeout   time.Duration `json:"init_timeout" yaml:"init_timeout" validate:"gt=0"`
	PhaseTimeout  time.Duration `json:"phase_timeout" yaml:"phase_timeout" validate:"gt=0"`
	HealthTimeout time.Duration `json:"health_timeout" yaml:"health_timeout" validate:"gt=0"`
	EventWorkers  int           `json:"event_workers" yaml:"event_workers" validate:"gte=1"`
	EventQueue    int           `json:"event_queue" yaml:"event_queue" validate:"gte=1"`
}

func getContainerConfig(r *reader) *Container {
	return &Container{
		InitTimeout:   r.durationOr("container.init_timeout", 5*time.Minute),
		PhaseTimeout:  r.durationOr("container.phase_timeout", 2*time.Minute),
		HealthTimeout: r.durationOr("container.health_timeout", 5*time.Second),
		EventWorkers:  r.intOr("container.event_workers", 4),
		EventQueue:    r.intOr("container.event_queue", 256),
	}
}

// Monitor runtime monitor config struct
type Monitor struct {
	Enabled       bool          `json:"enabled" yaml:"enabled"`
	Interval      time.Duration `json:"interval" yaml:"interval" validate:"gt=0"`
	MaxMemory     int64         `json:"max_memory" yaml:"max_memory" validate:"gte=0"`         // bytes, 0 disables the check
	MaxGoroutines int           `json:"max_goroutines" yaml:"max_goroutines" validate:"gte=0"` // 0 disables the check
}

func getMonitorConfig(r *reader) *Monitor {
	return &Monitor{
		Enabled:       r.boolOr("monitor.enabled", true),
		Interval:      r.durationOr("monitor.interval", 10*time.Second),
		MaxMemory:     r.int64Or("monitor.max_memory", 0),
		MaxGoroutines: r.intOr("monitor.max_goroutines", 0),
	}
}
