package config

import "time"

// Server embedded server config struct
type Server struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
}

// getServerConfig get server config
func getServerConfig(r *reader) *Server {
	return &Server{
		Host:            r.stringOr("server.host", ""),
		Port:            r.intOr("server.port", 8080),
		ReadTimeout:     r.durationOr("server.read_timeout", 15*time.Second),
		WriteTimeout:    r.durationOr("server.write_timeout", 15*time.Second),
		IdleTimeout:     r.durationOr("server.idle_timeout", 60*time.Second),
		ShutdownTimeout: r.durationOr("server.shutdown_timeout", 30*time.Second),
	}
}

// Management management endpoints config struct
type Management struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	BasePath string `json:"base_path" yaml:"base_path" validate:"startswith=/"`
}

// getManagementConfig get management config
func getManagementConfig(r *reader) *Management {
	return &Management{
		Enabled:  r.boolOr("management.enabled", true),
		BasePath: r.stringOr("management.base_path", "/actuator"),
	}
}

// Banner startup banner config struct
type Banner struct {
	Mode string `json:"mode" yaml:"mode" validate:"oneof=console log off"`
}

// getBannerConfig get banner config
func getBannerConfig(r *reader) *Banner {
	return &Banner{
		Mode: r.stringOr("banner.mode", "console"),
	}
}
