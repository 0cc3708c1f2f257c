package types

import (
	"context"

	"github.com/epoint/springlab/config"
	"github.com/gin-gonic/gin"
)

// Interface defines the core structure of a container component
type Interface interface {
	// Core methods

	Name() string
	Version() string
	Init(conf *config.Config, c ContainerInterface) error
	GetMetadata() Metadata

	// Dependency methods

	// Dependencies returns the names of components that must be present
	// and initialized first.
	Dependencies() []string

	// Optional methods interface

	OptionalMethods
}

// OptionalMethods represents optional methods of a component
type OptionalMethods interface {
	// Lifecycle methods

	PreInit() error
	PostInit() error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	PreCleanup() error
	Cleanup() error

	// Health reports nil while the component is healthy.
	Health(ctx context.Context) error

	// Dependency management

	GetAllDependencies() []DependencyEntry

	// HTTP routing

	RegisterRoutes(router *gin.RouterGroup)
}

// Wrapper wraps an Interface instance with its metadata
type Wrapper struct {
	Metadata Metadata  `json:"metadata"`
	Instance Interface `json:"-"`
}

// EventHandler handles a published event
type EventHandler func(e EventData)

// ContainerInterface is the view of the container given to components
// during Init.
type ContainerInterface interface {
	GetConfig() *config.Config
	Get(name string) (Interface, error)
	Subscribe(eventName string, handler EventHandler)
	Publish(eventName string, data any)
	PublishAsync(eventName string, data any)
}
