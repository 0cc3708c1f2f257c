package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/epoint/springlab/logging/observes"
	"github.com/epoint/springlab/metrics"
	"github.com/epoint/springlab/server"
	"github.com/google/wire"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Application events, published on the container event bus
const (
	EventStarting            = "application.starting"
	EventEnvironmentPrepared = "application.environment_prepared"
	EventContextRefreshed    = "application.context_refreshed"
	EventStarted             = "application.started"
	EventReady               = "application.ready"
	EventFailed              = "application.failed"
	EventClosed              = "application.closed"
	EventConfigChanged       = "config.changed"
)

// Application states
const (
	StateStarting  = "starting"
	StatePrepared  = "prepared"
	StateRefreshed = "refreshed"
	StateStarted   = "started"
	StateReady     = "ready"
	StateClosing   = "closing"
	StateClosed    = "closed"
	StateFailed    = "failed"
)

// ProviderSet is the wire provider set for the application package
var ProviderSet = wire.NewSet(New)

// Application drives the container through its lifecycle
type Application struct {
	conf     *config.Config
	root     Configuration
	c        *container.Container
	server   *server.Server
	metrics  *metrics.Metrics
	observer *observes.Observer
	log      *logger.Logger

	out io.Writer

	mu    sync.RWMutex
	state string
}

// New creates an application for the root configuration
func New(
	conf *config.Config,
	root Configuration,
	c *container.Container,
	srv *server.Server,
	m *metrics.Metrics,
	o *observes.Observer,
	log *logger.Logger,
) *Application {
	return &Application{
		conf:     conf,
		root:     root,
		c:        c,
		server:   srv,
		metrics:  m,
		observer: o,
		log:      log,
		out:      os.Stdout,
	}
}

// SetOutput sets where the console banner is printed
func (a *Application) SetOutput(w io.Writer) {
	a.out = w
}

// Container returns the application container
func (a *Application) Container() *container.Container {
	return a.c
}

// Server returns the embedded server
func (a *Application) Server() *server.Server {
	return a.server
}

// State returns the current application state
func (a *Application) State() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Application) setState(state string) {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
	if a.metrics != nil {
		a.metrics.SetState(state)
	}
}

// Run starts the application and blocks until ctx is done, then shuts it
// down gracefully. A startup failure is analyzed, reported and returned
// after everything already started has been closed.
func (a *Application) Run(ctx context.Context) error {
	begin := time.Now()

	a.setState(StateStarting)
	a.c.Publish(EventStarting, map[string]any{"args": a.conf.Arguments.Source})

	a.setState(StatePrepared)
	a.c.Publish(EventEnvironmentPrepared, map[string]any{
		"profiles": a.conf.Profiles,
		"file":     a.conf.File,
	})
	printBanner(a.out, a.log, a.conf)
	a.watchConfig(ctx)

	if err := a.startup(ctx); err != nil {
		return a.fail(ctx, err)
	}

	elapsed := time.Since(begin)
	a.setState(StateReady)
	a.server.SetReady(true)
	a.c.Publish(EventReady, map[string]any{"startup": elapsed.String()})
	if a.metrics != nil {
		a.metrics.StartupDuration.Set(elapsed.Seconds())
	}
	a.log.Infof(ctx, "Started %s in %.3f seconds", a.conf.AppName, elapsed.Seconds())

	<-ctx.Done()
	return a.shutdown()
}

// startup registers components, refreshes and starts the container and
// binds the embedded server.
func (a *Application) startup(ctx context.Context) (err error) {
	ctx, span := observes.StartSpan(ctx, "application.startup",
		attribute.String("app.name", a.conf.AppName),
		attribute.String("container.id", a.c.ID()),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	components := append([]types.Interface(nil), a.root.Components()...)
	components = append(components, autoConfigured(a.conf)...)
	if err := a.c.Register(components...); err != nil {
		return err
	}
	if a.metrics != nil {
		if err := a.metrics.RegisterContainer(a.c); err != nil {
			return fmt.Errorf("failed to register container metrics: %w", err)
		}
	}

	if err := a.c.Refresh(ctx); err != nil {
		return err
	}
	a.setState(StateRefreshed)
	a.c.Publish(EventContextRefreshed, map[string]any{"order": a.c.Order()})

	if err := a.c.Start(ctx); err != nil {
		return err
	}
	a.server.RegisterComponentRoutes()
	if err := a.server.Start(ctx); err != nil {
		return err
	}
	a.setState(StateStarted)
	a.c.Publish(EventStarted, map[string]any{"addr": a.server.Addr()})

	return nil
}

// fail reports a startup failure and closes whatever was started
func (a *Application) fail(ctx context.Context, err error) error {
	a.setState(StateFailed)
	if a.metrics != nil {
		a.metrics.StartupFailures.Inc()
	}

	analysis := Analyze(err)
	a.c.Publish(EventFailed, analysis)
	ReportFailure(ctx, a.log, analysis)
	a.observer.CaptureError(err)

	if cerr := a.close(); cerr != nil {
		a.log.Errorf(ctx, "failed to close after startup failure: %v", cerr)
	}
	return err
}

// shutdown stops the server and closes the container within the
// configured shutdown timeout.
func (a *Application) shutdown() error {
	a.setState(StateClosing)
	a.server.SetReady(false)
	a.log.Infof(context.Background(), "Shutting down %s", a.conf.AppName)

	err := a.close()
	a.setState(StateClosed)
	a.c.Publish(EventClosed, map[string]any{"uptime": time.Since(a.c.StartedAt()).String()})
	return err
}

func (a *Application) close() error {
	timeout := 30 * time.Second
	if a.conf.Server != nil && a.conf.Server.ShutdownTimeout > 0 {
		timeout = a.conf.Server.ShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := a.server.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.c.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// watchConfig publishes reloaded configurations when config.watch is set
func (a *Application) watchConfig(ctx context.Context) {
	if !a.conf.Watch {
		return
	}

	err := config.Watch(a.conf, func(next *config.Config, err error) {
		if err != nil {
			a.log.Warnf(context.Background(), "ignoring config change: %v", err)
			return
		}
		a.log.Infof(context.Background(), "config file %s changed", next.File)
		a.c.PublishAsync(EventConfigChanged, next)
	})
	if err != nil {
		a.log.Warnf(ctx, "config watch disabled: %v", err)
	}
}
