package application

import (
	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/data"
	"github.com/epoint/springlab/discovery"
	"github.com/epoint/springlab/monitor"
)

// Configuration is the statically declared root of an application. It
// lists the components the application contributes to the container.
type Configuration interface {
	Components() []types.Interface
}

// autoConfigured returns the housekeeping components whose conditions hold
// for conf. Each condition is evaluated against the resolved configuration.
func autoConfigured(conf *config.Config) []types.Interface {
	var components []types.Interface

	if monitor.Enabled(conf.Monitor) {
		components = append(components, monitor.New(conf.Monitor))
	}
	components = append(components, data.Components(conf.Data)...)
	components = append(components, discovery.Components(conf.Consul)...)

	return components
}
