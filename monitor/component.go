package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
)

// Name is the component name of the runtime monitor
const Name = "runtime-monitor"

// EventThresholdExceeded is published when a sample breaks a threshold
const EventThresholdExceeded = "monitor.threshold_exceeded"

// Component samples runtime stats on an interval while started
type Component struct {
	types.OptionalImpl

	cfg   *config.Monitor
	stats *RuntimeStats
	c     types.ContainerInterface

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates the runtime monitor component
func New(cfg *config.Monitor) *Component {
	if cfg == nil {
		cfg = &config.Monitor{Enabled: true, Interval: 10 * time.Second}
	}
	return &Component{
		cfg: cfg,
		stats: NewRuntimeStats(Thresholds{
			MaxMemory:     uint64(cfg.MaxMemory),
			MaxGoroutines: cfg.MaxGoroutines,
		}),
	}
}

func (m *Component) Name() string           { return Name }
func (m *Component) Version() string        { return "1.0.0" }
func (m *Component) Dependencies() []string { return nil }

func (m *Component) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        Name,
		Version:     m.Version(),
		Description: "Samples memory and goroutine usage",
		Type:        "core",
		Group:       "sys",
	}
}

// Init keeps the container for publishing threshold events
func (m *Component) Init(_ *config.Config, c types.ContainerInterface) error {
	m.c = c
	m.stats.Sample()
	return nil
}

// Start begins periodic sampling
func (m *Component) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
	return nil
}

// Stop ends sampling and waits for the loop to exit
func (m *Component) Stop(ctx context.Context) error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health reports threshold violations of the latest sample
func (m *Component) Health(context.Context) error {
	return errors.Join(m.stats.CheckThresholds()...)
}

// Stats returns the underlying runtime stats
func (m *Component) Stats() *RuntimeStats {
	return m.stats
}

func (m *Component) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *Component) check(ctx context.Context) {
	sample := m.stats.Sample()
	errs := m.stats.CheckThresholds()
	if len(errs) == 0 {
		return
	}

	err := errors.Join(errs...)
	logger.Warnf(ctx, "runtime threshold exceeded: %v", err)
	if m.c != nil {
		m.c.PublishAsync(EventThresholdExceeded, map[string]any{
			"metrics": sample,
			"error":   err.Error(),
		})
	}
}
