package container

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/epoint/springlab/concurrency/worker"
	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// Container manages components and their lifecycle
type Container struct {
	conf *config.Config

	id        string
	startedAt time.Time

	mu         sync.RWMutex
	components map[string]*types.Wrapper
	statuses   map[string]string
	breakers   map[string]*gobreaker.CircuitBreaker
	order      []string // init order, set by Refresh
	touched    []string // components whose PreInit ran
	started    []string // components whose Start succeeded
	refreshed  bool
	closed     bool

	bus  *EventBus
	pool *worker.Pool
}

// New creates a container for conf.
func New(conf *config.Config) *Container {
	cc := containerConfig(conf)

	pool := worker.NewPool(&worker.Config{
		MaxWorkers: cc.EventWorkers,
		QueueSize:  cc.EventQueue,
	})
	pool.Start()

	return &Container{
		conf:       conf,
		id:         uuid.NewString(),
		startedAt:  time.Now(),
		components: make(map[string]*types.Wrapper),
		statuses:   make(map[string]string),
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
		bus:        NewEventBus(pool),
		pool:       pool,
	}
}

// containerConfig returns conf.Container or defaults.
func containerConfig(conf *config.Config) *config.Container {
	if conf != nil && conf.Container != nil {
		return conf.Container
	}
	return &config.Container{
		InitTimeout:   5 * time.Minute,
		PhaseTimeout:  2 * time.Minute,
		HealthTimeout: 5 * time.Second,
		EventWorkers:  4,
		EventQueue:    256,
	}
}

// ID returns the unique id of this container instance.
func (c *Container) ID() string {
	return c.id
}

// StartedAt returns the time the container was created.
func (c *Container) StartedAt() time.Time {
	return c.startedAt
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.conf
}

// Register adds components. Registration fails for a duplicate name or
// once the container has been refreshed; nothing is registered then.
func (c *Container) Register(components ...types.Interface) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.refreshed {
		return ErrAlreadyRefreshed
	}

	seen := make(map[string]bool, len(components))
	for _, comp := range components {
		if comp == nil {
			return fmt.Errorf("component is nil")
		}
		name := comp.Name()
		if name == "" {
			return fmt.Errorf("component name is empty")
		}
		if _, exists := c.components[name]; exists || seen[name] {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
		}
		seen[name] = true
	}

	for _, comp := range components {
		name := comp.Name()
		metadata := comp.GetMetadata()
		if metadata.Name == "" {
			metadata.Name = name
		}
		c.components[name] = &types.Wrapper{Metadata: metadata, Instance: comp}
		c.statuses[name] = types.StatusInactive
		c.breakers[name] = newBreaker(name)
	}
	return nil
}

// Get returns a component by name
func (c *Container) Get(name string) (types.Interface, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	w, ok := c.components[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return w.Instance, nil
}

// List returns a copy of the registered components
func (c *Container) List() map[string]*types.Wrapper {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]*types.Wrapper, len(c.components))
	for name, w := range c.components {
		result[name] = w
	}
	return result
}

// Names returns the sorted component names
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.components))
	for name := range c.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Order returns the initialization order computed by Refresh.
func (c *Container) Order() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Metadata returns the metadata of all components
func (c *Container) Metadata() map[string]types.Metadata {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]types.Metadata, len(c.components))
	for name, w := range c.components {
		result[name] = w.Metadata
	}
	return result
}

// Status returns the lifecycle status of all components
func (c *Container) Status() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]string, len(c.statuses))
	for name, status := range c.statuses {
		result[name] = status
	}
	return result
}

// IsRefreshed reports whether Refresh completed successfully.
func (c *Container) IsRefreshed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}

func (c *Container) setStatus(name, status string) {
	c.mu.Lock()
	c.statuses[name] = status
	c.mu.Unlock()
}

func (c *Container) instance(name string) types.Interface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.components[name].Instance
}
