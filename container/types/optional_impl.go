package types

import (
	"context"

	"github.com/gin-gonic/gin"
)

// OptionalImpl implements the optional methods
type OptionalImpl struct{}

// PreInit performs any necessary setup before initialization
func (o *OptionalImpl) PreInit() error {
	return nil
}

// PostInit performs any necessary setup after initialization
func (o *OptionalImpl) PostInit() error {
	return nil
}

// Start starts background work of the component
func (o *OptionalImpl) Start(ctx context.Context) error {
	return nil
}

// Stop stops background work of the component
func (o *OptionalImpl) Stop(ctx context.Context) error {
	return nil
}

// PreCleanup performs any necessary cleanup before the main cleanup
func (o *OptionalImpl) PreCleanup() error {
	return nil
}

// Cleanup cleans up the component
func (o *OptionalImpl) Cleanup() error {
	return nil
}

// Health reports the component as healthy
func (o *OptionalImpl) Health(ctx context.Context) error {
	return nil
}

// GetAllDependencies returns all dependencies with their types
func (o *OptionalImpl) GetAllDependencies() []DependencyEntry {
	return []DependencyEntry{}
}

// RegisterRoutes registers routes for the component
func (o *OptionalImpl) RegisterRoutes(router *gin.RouterGroup) {}
