package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
)

// Container event names
const (
	EventRefreshed = "container.refreshed"
	EventStarted   = "container.started"
	EventClosed    = "container.closed"
)

// ComponentReadyEvent returns the event published when name becomes active.
func ComponentReadyEvent(name string) string {
	return fmt.Sprintf("component.%s.ready", name)
}

// Refresh initializes all registered components in dependency order. On
// failure every component that began initialization is cleaned up in
// reverse order.
func (c *Container) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.refreshed {
		c.mu.Unlock()
		return ErrAlreadyRefreshed
	}
	if err := checkDependencies(c.components); err != nil {
		c.mu.Unlock()
		return err
	}
	order, err := getInitOrder(c.components, nil)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.order = order
	c.touched = nil
	c.mu.Unlock()

	cc := containerConfig(c.conf)
	initCtx, cancel := context.WithTimeout(ctx, cc.InitTimeout)
	defer cancel()

	if err := c.initializeInPhases(initCtx, order); err != nil {
		if errors.Is(initCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil && !errors.Is(err, ErrInitTimeout) {
			err = fmt.Errorf("%w: initialization exceeded %v: %v", ErrInitTimeout, cc.InitTimeout, err)
		}
		c.cleanupPartialInitialization()
		return err
	}

	c.mu.Lock()
	c.refreshed = true
	c.mu.Unlock()

	c.Publish(EventRefreshed, map[string]any{
		"id":    c.id,
		"count": len(order),
		"order": order,
	})
	return nil
}

// initializeInPhases runs PreInit, Init and PostInit over order
func (c *Container) initializeInPhases(ctx context.Context, order []string) error {
	phaseTimeout := containerConfig(c.conf).PhaseTimeout

	// Phase 1: Pre-initialization
	for _, name := range order {
		comp := c.instance(name)
		c.mu.Lock()
		c.touched = append(c.touched, name)
		c.mu.Unlock()
		c.setStatus(name, types.StatusInitializing)

		if err := runWithTimeout(ctx, phaseTimeout, comp.PreInit); err != nil {
			return c.phaseFailed(ctx, name, "pre-initialization", err)
		}
	}

	// Phase 2: Main initialization
	for _, name := range order {
		comp := c.instance(name)
		start := time.Now()

		err := runWithTimeout(ctx, phaseTimeout, func() error {
			return comp.Init(c.conf, c)
		})
		if err != nil {
			return c.phaseFailed(ctx, name, "initialization", err)
		}
		logger.Debugf(ctx, "component %s initialized in %v", name, time.Since(start))
	}

	// Phase 3: Post-initialization
	for _, name := range order {
		comp := c.instance(name)
		if err := runWithTimeout(ctx, phaseTimeout, comp.PostInit); err != nil {
			return c.phaseFailed(ctx, name, "post-initialization", err)
		}
		c.setStatus(name, types.StatusActive)

		c.Publish(ComponentReadyEvent(name), map[string]any{
			"name":     name,
			"status":   types.StatusActive,
			"metadata": comp.GetMetadata(),
		})
	}

	logger.Debugf(ctx, "initialized %d components: %v", len(order), order)
	return nil
}

func (c *Container) phaseFailed(ctx context.Context, name, phase string, err error) error {
	c.setStatus(name, types.StatusError)
	logger.Errorf(ctx, "failed %s of component %s: %v", phase, name, err)

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s of component %s: %v", ErrInitTimeout, phase, name, err)
	}
	return fmt.Errorf("%s of component %s failed: %w", phase, name, err)
}

// cleanupPartialInitialization cleans up every component whose PreInit ran
func (c *Container) cleanupPartialInitialization() {
	c.mu.Lock()
	touched := c.touched
	c.touched = nil
	c.mu.Unlock()

	if len(touched) == 0 {
		return
	}
	logger.Warnf(context.Background(), "cleaning up partial initialization of %d components", len(touched))

	for i := len(touched) - 1; i >= 0; i-- {
		name := touched[i]
		comp := c.instance(name)
		if err := safeCall(comp.PreCleanup); err != nil {
			logger.Errorf(context.Background(), "failed pre-cleanup of component %s: %v", name, err)
		}
		if err := safeCall(comp.Cleanup); err != nil {
			logger.Errorf(context.Background(), "failed to cleanup component %s: %v", name, err)
		}
		c.setStatus(name, types.StatusStopped)
	}
}

// Start starts the components in initialization order. When one fails the
// already started components are stopped in reverse order.
func (c *Container) Start(ctx context.Context) error {
	c.mu.RLock()
	closed, refreshed := c.closed, c.refreshed
	order := append([]string(nil), c.order...)
	c.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if !refreshed {
		return ErrNotRefreshed
	}

	phaseTimeout := containerConfig(c.conf).PhaseTimeout
	for _, name := range order {
		comp := c.instance(name)
		err := runWithTimeout(ctx, phaseTimeout, func() error {
			return comp.Start(ctx)
		})
		if err != nil {
			c.setStatus(name, types.StatusError)
			c.stopStarted(ctx)
			return fmt.Errorf("start of component %s failed: %w", name, err)
		}

		c.mu.Lock()
		c.started = append(c.started, name)
		c.mu.Unlock()
	}

	c.Publish(EventStarted, map[string]any{"id": c.id, "count": len(order)})
	return nil
}

// stopStarted stops started components in reverse order
func (c *Container) stopStarted(ctx context.Context) []error {
	c.mu.Lock()
	started := c.started
	c.started = nil
	c.mu.Unlock()

	var errs []error
	phaseTimeout := containerConfig(c.conf).PhaseTimeout
	for i := len(started) - 1; i >= 0; i-- {
		name := started[i]
		comp := c.instance(name)
		if err := runWithTimeout(ctx, phaseTimeout, func() error { return comp.Stop(ctx) }); err != nil {
			logger.Errorf(ctx, "failed to stop component %s: %v", name, err)
			errs = append(errs, fmt.Errorf("stop of component %s failed: %w", name, err))
		}
	}
	return errs
}

// Close stops started components, then runs PreCleanup and Cleanup over
// every initialized component, all in reverse order. Only the first call
// does anything.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	order := append([]string(nil), c.order...)
	refreshed := c.refreshed
	c.mu.Unlock()

	errs := c.stopStarted(ctx)

	if refreshed {
		for i := len(order) - 1; i >= 0; i-- {
			name := order[i]
			if err := safeCall(c.instance(name).PreCleanup); err != nil {
				logger.Errorf(ctx, "failed pre-cleanup of component %s: %v", name, err)
				errs = append(errs, fmt.Errorf("pre-cleanup of component %s failed: %w", name, err))
			}
		}
		for i := len(order) - 1; i >= 0; i-- {
			name := order[i]
			if err := safeCall(c.instance(name).Cleanup); err != nil {
				logger.Errorf(ctx, "failed to cleanup component %s: %v", name, err)
				errs = append(errs, fmt.Errorf("cleanup of component %s failed: %w", name, err))
			}
			c.setStatus(name, types.StatusStopped)
		}
	}

	c.Publish(EventClosed, map[string]any{"id": c.id})
	c.pool.Stop(ctx)

	return errors.Join(errs...)
}

// IsClosed reports whether Close has been called.
func (c *Container) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// runWithTimeout runs fn, returning early with the context error when
// timeout or ctx expires first.
func runWithTimeout(ctx context.Context, timeout time.Duration, fn func() error) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- safeCall(fn)
	}()

	select {
	case err := <-done:
		return err
	case <-timeoutCtx.Done():
		return timeoutCtx.Err()
	}
}

// safeCall converts a panic in fn into an error
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("method panic: %v", r)
		}
	}()
	return fn()
}
