package container

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/epoint/springlab/concurrency/worker"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
)

// EventSource is the source stamped on events published by the container.
const EventSource = "container"

// EventBus delivers events to subscribers, either inline or on a worker pool
type EventBus struct {
	subscribers map[string][]types.EventHandler
	mu          sync.RWMutex
	pool        *worker.Pool

	metrics struct {
		published     atomic.Int64
		processed     atomic.Int64
		failed        atomic.Int64
		dropped       atomic.Int64
		lastEventTime atomic.Int64 // unix nano
	}
}

// NewEventBus creates an event bus running async handlers on pool
func NewEventBus(pool *worker.Pool) *EventBus {
	return &EventBus{
		subscribers: make(map[string][]types.EventHandler),
		pool:        pool,
	}
}

// Subscribe adds a handler for eventName
func (eb *EventBus) Subscribe(eventName string, handler types.EventHandler) {
	if handler == nil {
		return
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventName] = append(eb.subscribers[eventName], handler)
}

// Publish calls every handler of eventName before returning
func (eb *EventBus) Publish(eventName string, data any) {
	handlers, event := eb.prepare(eventName, data)
	for _, h := range handlers {
		eb.deliver(h, event)
	}
}

// PublishAsync queues every handler of eventName on the worker pool.
// Handlers that cannot be queued are dropped and counted.
func (eb *EventBus) PublishAsync(eventName string, data any) {
	handlers, event := eb.prepare(eventName, data)
	for _, h := range handlers {
		h := h
		err := eb.pool.Submit(func(ctx context.Context) error {
			eb.deliver(h, event)
			return nil
		})
		if err != nil {
			eb.metrics.dropped.Add(1)
			logger.Warnf(context.Background(), "event %s dropped: %v", eventName, err)
		}
	}
}

func (eb *EventBus) prepare(eventName string, data any) ([]types.EventHandler, types.EventData) {
	eb.mu.RLock()
	handlers := append([]types.EventHandler(nil), eb.subscribers[eventName]...)
	eb.mu.RUnlock()

	now := time.Now()
	eb.metrics.published.Add(1)
	eb.metrics.lastEventTime.Store(now.UnixNano())

	return handlers, types.EventData{
		Time:      now,
		Source:    EventSource,
		EventType: eventName,
		Data:      data,
	}
}

// deliver runs h, recovering and counting a panic
func (eb *EventBus) deliver(h types.EventHandler, event types.EventData) {
	defer func() {
		if r := recover(); r != nil {
			eb.metrics.failed.Add(1)
			logger.Errorf(context.Background(), "panic in event handler for %s: %v", event.EventType, r)
		}
	}()

	h(event)
	eb.metrics.processed.Add(1)
}

// GetMetrics returns metrics
func (eb *EventBus) GetMetrics() map[string]int64 {
	return map[string]int64{
		"published_events": eb.metrics.published.Load(),
		"processed_events": eb.metrics.processed.Load(),
		"failed_events":    eb.metrics.failed.Load(),
		"dropped_events":   eb.metrics.dropped.Load(),
		"last_event_time":  eb.metrics.lastEventTime.Load(),
	}
}

// Subscribe adds a handler for eventName
func (c *Container) Subscribe(eventName string, handler types.EventHandler) {
	c.bus.Subscribe(eventName, handler)
}

// Publish delivers an event synchronously
func (c *Container) Publish(eventName string, data any) {
	c.bus.Publish(eventName, data)
}

// PublishAsync delivers an event on the event worker pool
func (c *Container) PublishAsync(eventName string, data any) {
	c.bus.PublishAsync(eventName, data)
}

// EventMetrics returns the event bus metrics
func (c *Container) EventMetrics() map[string]int64 {
	return c.bus.GetMetrics()
}
