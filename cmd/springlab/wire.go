//go:build wireinject

package main

import (
	"github.com/epoint/springlab/application"
	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container"
	"github.com/epoint/springlab/logging/logger"
	"github.com/epoint/springlab/logging/observes"
	"github.com/epoint/springlab/metrics"
	"github.com/epoint/springlab/server"
	"github.com/google/wire"
)

// InitializeApplication builds the application for the process arguments.
// The returned cleanup releases the container, the observability backends
// and the logger, in that order.
func InitializeApplication(args []string) (*application.Application, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		observes.ProviderSet,
		container.ProviderSet,
		metrics.ProviderSet,
		server.ProviderSet,
		application.ProviderSet,
		NewLabApplication,
		wire.Bind(new(application.Configuration), new(*LabApplication)),
	))
}
