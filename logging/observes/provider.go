package observes

import (
	"context"

	"github.com/epoint/springlab/config"
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the observes package
var ProviderSet = wire.NewSet(ProvideObserver)

// ProvideObserver initializes the observability backends.
func ProvideObserver(cfg *config.Config) (*Observer, func(), error) {
	o, err := New(cfg.Observes, cfg.AppName)
	if err != nil {
		return nil, nil, err
	}
	return o, func() { _ = o.Shutdown(context.Background()) }, nil
}
