package observes

import (
	"time"

	"github.com/epoint/springlab/config"
	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 2 * time.Second

// NewSentry initializes the sentry client. It reports false without error
// when no endpoint is configured.
func NewSentry(c *config.Sentry, name, release string) (bool, error) {
	if c == nil || c.Endpoint == "" {
		return false, nil
	}
	if c.Release != "" {
		release = c.Release
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.Endpoint,
		AttachStacktrace: true,
		SampleRate:       c.SampleRate,
		ServerName:       name,
		Release:          release,
		Environment:      c.Environment,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
