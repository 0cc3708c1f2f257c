package container

import (
	"context"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/logging/logger"
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the container package
var ProviderSet = wire.NewSet(ProvideContainer)

// ProvideContainer creates the container and closes it on cleanup
func ProvideContainer(conf *config.Config) (*Container, func()) {
	c := New(conf)
	return c, func() {
		if err := c.Close(context.Background()); err != nil {
			logger.Errorf(context.Background(), "failed to close container: %v", err)
		}
	}
}
