package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
)

// Name is the component name of the consul registration
const Name = "discovery"

// deregisterCriticalAfter removes a service whose check stays critical
const deregisterCriticalAfter = "5m"

// Consul registers the running application with a consul agent once the
// embedded server is listening and deregisters it on stop.
type Consul struct {
	types.OptionalImpl

	cfg    *config.Consul
	client *api.Client

	appName    string
	healthPath string

	mu         sync.Mutex
	serviceID  string
	registered bool
}

// New creates the consul component
func New(cfg *config.Consul) *Consul {
	return &Consul{cfg: cfg}
}

func (d *Consul) Name() string           { return Name }
func (d *Consul) Version() string        { return "1.0.0" }
func (d *Consul) Dependencies() []string { return nil }

func (d *Consul) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        Name,
		Version:     d.Version(),
		Description: "Consul service registration",
		Type:        "discovery",
		Group:       "sys",
	}
}

// Init creates the consul client and subscribes to the server start event
func (d *Consul) Init(conf *config.Config, c types.ContainerInterface) error {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = d.cfg.Address
	if d.cfg.Scheme != "" {
		consulConfig.Scheme = d.cfg.Scheme
	}

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return fmt.Errorf("failed to create consul client: %w", err)
	}
	d.client = client

	d.appName = "springlab"
	if conf != nil {
		d.appName = conf.AppName
		if conf.Management != nil && conf.Management.Enabled {
			d.healthPath = conf.Management.BasePath + "/health"
		}
	}
	d.serviceID = fmt.Sprintf("%s-%s", d.appName, uuid.New().String()[:8])

	if c != nil {
		c.Subscribe(types.EventServerStarted, d.onServerStarted)
	}
	return nil
}

func (d *Consul) onServerStarted(e types.EventData) {
	addr, ok := e.Data.(string)
	if !ok || addr == "" {
		logger.Warnf(context.Background(), "discovery: server started event without address")
		return
	}
	if err := d.Register(addr); err != nil {
		logger.Errorf(context.Background(), "discovery: %v", err)
	}
}

// Register registers the service listening on addr
func (d *Consul) Register(addr string) error {
	if d.client == nil {
		return errors.New("consul client not initialized")
	}

	host, port, err := serviceAddress(addr)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	registration := &api.AgentServiceRegistration{
		ID:      d.serviceID,
		Name:    d.appName,
		Address: host,
		Port:    port,
		Tags:    d.cfg.Discovery.Tags,
		Meta:    d.cfg.Discovery.Meta,
	}

	if d.cfg.Discovery.HealthCheck && d.healthPath != "" {
		registration.Check = &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s%s", net.JoinHostPort(host, strconv.Itoa(port)), d.healthPath),
			Interval:                       d.cfg.Discovery.CheckInterval.String(),
			Timeout:                        d.cfg.Discovery.Timeout.String(),
			DeregisterCriticalServiceAfter: deregisterCriticalAfter,
		}
	}

	if err := d.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}
	d.registered = true

	logger.Infof(context.Background(), "service registered: %s (%s), address: %s:%d", d.appName, d.serviceID, host, port)
	return nil
}

// Stop deregisters the service
func (d *Consul) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.registered {
		return nil
	}

	opts := (&api.QueryOptions{}).WithContext(ctx)
	if err := d.client.Agent().ServiceDeregisterOpts(d.serviceID, opts); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", d.serviceID, err)
	}
	d.registered = false

	logger.Infof(ctx, "service deregistered: %s", d.serviceID)
	return nil
}

// Health checks that the consul agent has a leader
func (d *Consul) Health(ctx context.Context) error {
	if d.client == nil {
		return errors.New("consul client not initialized")
	}
	leader, err := d.client.Status().LeaderWithQueryOptions((&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return fmt.Errorf("consul unreachable: %w", err)
	}
	if leader == "" {
		return errors.New("consul has no leader")
	}
	return nil
}

// ServiceID returns the id used for registration
func (d *Consul) ServiceID() string {
	return d.serviceID
}

// IsRegistered reports whether the service is currently registered
func (d *Consul) IsRegistered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registered
}

// serviceAddress splits addr, replacing an unspecified host with the hostname
func serviceAddress(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid service address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid service port %q: %w", portStr, err)
	}

	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		if name, err := os.Hostname(); err == nil && name != "" {
			host = name
		} else {
			host = "127.0.0.1"
		}
	}
	return host, port, nil
}
