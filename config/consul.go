package config

import "time"

// Consul config struct
type Consul struct {
	Address   string `json:"address"`
	Scheme    string `json:"scheme" validate:"omitempty,oneof=http https"`
	Discovery struct {
		Tags          []string          `json:"tags"`
		Meta          map[string]string `json:"meta"`
		HealthCheck   bool              `json:"health_check"`
		CheckInterval time.Duration     `json:"check_interval" validate:"gt=0"`
		Timeout       time.Duration     `json:"timeout" validate:"gt=0"`
	} `json:"discovery"`
}

// Enabled reports whether service registration is configured.
func (c *Consul) Enabled() bool {
	return c != nil && c.Address != ""
}

// getConsulConfig get consul config
func getConsulConfig(r *reader) *Consul {
	consul := &Consul{
		Address: r.stringOr("consul.address", ""),
		Scheme:  r.stringOr("consul.scheme", "http"),
	}

	consul.Discovery.Tags = r.stringSliceOr("consul.discovery.tags", nil)
	consul.Discovery.Meta = r.stringMap("consul.discovery.meta")
	consul.Discovery.HealthCheck = r.boolOr("consul.discovery.health_check", true)
	consul.Discovery.CheckInterval = r.durationOr("consul.discovery.check_interval", 10*time.Second)
	consul.Discovery.Timeout = r.durationOr("consul.discovery.timeout", 5*time.Second)

	return consul
}
