// Package report forwards client-side failures to Sentry. With an empty DSN
// every call is a no-op, so local runs need no account.
package report

import (
	"time"

	"github.com/getsentry/sentry-go"
)

type Reporter struct {
	enabled bool
}

func New(dsn, env string) (*Reporter, error) {
	if dsn == "" {
		return &Reporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Debug:       env != "prod",
		SampleRate:  1.0,
	})
	if err != nil {
		return nil, err
	}
	return &Reporter{enabled: true}, nil
}

// CaptureException sends an error to Sentry.
func (r *Reporter) CaptureException(err error) {
	if r == nil || !r.enabled || err == nil {
		return
	}
	sentry.CaptureException(err)
}

// CaptureMessage sends a plain message to Sentry.
func (r *Reporter) CaptureMessage(message string) {
	if r == nil || !r.enabled {
		return
	}
	sentry.CaptureMessage(message)
}

// Close flushes pending events and shuts the client down.
func (r *Reporter) Close() {
	if r == nil || !r.enabled {
		return
	}
	sentry.Flush(2 * time.Second)
}
