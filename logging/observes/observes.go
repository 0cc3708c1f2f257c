package observes

import (
	"context"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/version"
	"github.com/getsentry/sentry-go"
)

// Observer holds the optional error reporting and tracing backends.
type Observer struct {
	sentry   bool
	shutdown ShutdownFunc
}

// New initializes the backends enabled in c.
func New(c *config.Observes, name string) (*Observer, error) {
	o := &Observer{shutdown: noopShutdown}
	if c == nil {
		return o, nil
	}

	info := version.GetVersionInfo()

	enabled, err := NewSentry(c.Sentry, name, info.Version)
	if err != nil {
		return nil, err
	}
	o.sentry = enabled

	shutdown, err := NewTracer(c.Tracer, info)
	if err != nil {
		return nil, err
	}
	o.shutdown = shutdown
	return o, nil
}

// SentryEnabled reports whether errors are forwarded to sentry.
func (o *Observer) SentryEnabled() bool {
	return o != nil && o.sentry
}

// CaptureError reports err to sentry and waits briefly for delivery.
func (o *Observer) CaptureError(err error) {
	if !o.SentryEnabled() || err == nil {
		return
	}
	sentry.CaptureException(err)
	sentry.Flush(sentryFlushTimeout)
}

// Shutdown flushes the tracer provider.
func (o *Observer) Shutdown(ctx context.Context) error {
	if o == nil || o.shutdown == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	return o.shutdown(ctx)
}
