package container

import (
	"context"
	"fmt"
	"time"

	"github.com/epoint/springlab/container/types"
	"github.com/sony/gobreaker"
)

// Health status values
const (
	HealthUp   = "UP"
	HealthDown = "DOWN"
)

// ComponentHealth is the health of one component
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthReport aggregates component health
type HealthReport struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// IsUp reports whether every component is healthy
func (r HealthReport) IsUp() bool {
	return r.Status == HealthUp
}

// newBreaker creates the circuit breaker guarding a component health check
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})
}

// Health checks every component. A component that is not active or whose
// check fails, times out or has tripped its breaker is DOWN.
func (c *Container) Health(ctx context.Context) HealthReport {
	timeout := containerConfig(c.conf).HealthTimeout
	report := HealthReport{Status: HealthUp, Components: make(map[string]ComponentHealth)}

	for _, name := range c.Names() {
		h := c.componentHealth(ctx, name, timeout)
		report.Components[name] = h
		if h.Status != HealthUp {
			report.Status = HealthDown
		}
	}
	return report
}

func (c *Container) componentHealth(ctx context.Context, name string, timeout time.Duration) ComponentHealth {
	c.mu.RLock()
	status := c.statuses[name]
	cb := c.breakers[name]
	comp := c.components[name].Instance
	c.mu.RUnlock()

	if status != types.StatusActive {
		return ComponentHealth{Status: HealthDown, Error: fmt.Sprintf("component is %s", status)}
	}

	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := cb.Execute(func() (any, error) {
		return nil, runWithTimeout(hctx, timeout, func() error {
			return comp.Health(hctx)
		})
	})
	if err != nil {
		return ComponentHealth{Status: HealthDown, Error: err.Error()}
	}
	return ComponentHealth{Status: HealthUp}
}

// ExecuteWithCircuitBreaker executes fn with the breaker of the named component
func (c *Container) ExecuteWithCircuitBreaker(name string, fn func() (any, error)) (any, error) {
	c.mu.RLock()
	cb, ok := c.breakers[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return cb.Execute(fn)
}
