package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

// Sentry holds crash reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("GHRELEASE_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Destination: &c.Env,
			Sources:     cli.EnvVars("GHRELEASE_SENTRY_ENV"),
		},
	}
}

// Enabled reports whether a DSN is configured
func (c *Sentry) Enabled() bool {
	return c.DSN != ""
}

// Configure initializes the Sentry client. It does nothing without DSN.
func (c *Sentry) Configure() error {
	if !c.Enabled() {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "ghrelease@" + types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "sentryDsn"))
	}
	return nil
}

// Capture reports err with its goerr values as extra context and waits for delivery
func (c *Sentry) Capture(err error, runID string) {
	if !c.Enabled() || err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", runID)
		if ge := goerr.Unwrap(err); ge != nil {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		}
	})
	hub.CaptureException(err)
	hub.Flush(2 * time.Second)
}
