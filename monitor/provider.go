package monitor

import "github.com/epoint/springlab/config"

// Enabled reports whether the monitor should be registered
func Enabled(cfg *config.Monitor) bool {
	return cfg != nil && cfg.Enabled
}
