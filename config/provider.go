package config

import "github.com/google/wire"

// ProviderSet is the wire provider set for the config package.
// It parses the process arguments, loads the *Config and extracts
// sub-configurations for the components that need them.
//
// Usage:
//
//	wire.Build(
//	    config.ProviderSet,
//	    // ... other providers
//	)
var ProviderSet = wire.NewSet(
	ParseArguments,
	Load,
	ProvideServerConfig,
	ProvideManagementConfig,
	ProvideLoggerConfig,
	ProvideObservesConfig,
	ProvideContainerConfig,
	ProvideMonitorConfig,
	ProvideDataConfig,
	ProvideConsulConfig,
)

// ProvideServerConfig provides the embedded server configuration.
func ProvideServerConfig(cfg *Config) *Server {
	if cfg == nil {
		return nil
	}
	return cfg.Server
}

// ProvideManagementConfig provides the management endpoints configuration.
func ProvideManagementConfig(cfg *Config) *Management {
	if cfg == nil {
		return nil
	}
	return cfg.Management
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideObservesConfig provides the observability configuration.
func ProvideObservesConfig(cfg *Config) *Observes {
	if cfg == nil {
		return nil
	}
	return cfg.Observes
}

// ProvideContainerConfig provides the component container configuration.
func ProvideContainerConfig(cfg *Config) *Container {
	if cfg == nil {
		return nil
	}
	return cfg.Container
}

// ProvideMonitorConfig provides the runtime monitor configuration.
func ProvideMonitorConfig(cfg *Config) *Monitor {
	if cfg == nil {
		return nil
	}
	return cfg.Monitor
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *Data {
	if cfg == nil {
		return nil
	}
	return cfg.Data
}

// ProvideConsulConfig provides the service discovery configuration.
func ProvideConsulConfig(cfg *Config) *Consul {
	if cfg == nil {
		return nil
	}
	return cfg.Consul
}
