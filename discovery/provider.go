package discovery

import (
	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
)

// Components returns the consul component when an agent is configured
func Components(cfg *config.Consul) []types.Interface {
	if !cfg.Enabled() {
		return nil
	}
	return []types.Interface{New(cfg)}
}
