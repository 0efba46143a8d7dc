package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	"github.com/m-mizutani/ghrelease/pkg/usecase"
)

// Upload holds upload tuning
type Upload struct {
	Parallelism    int64
	RequestTimeout time.Duration
	Progress       bool
}

// Flags returns CLI flags for upload tuning
func (c *Upload) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "parallelism",
			Aliases:     []string{"p"},
			Usage:       "Number of assets uploaded at once",
			Value:       1,
			Destination: &c.Parallelism,
			Sources:     cli.EnvVars("GHRELEASE_PARALLELISM"),
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Timeout of each GitHub API call, 0 for none",
			Destination: &c.RequestTimeout,
			Sources:     cli.EnvVars("GHRELEASE_REQUEST_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "progress",
			Usage:       "Show an upload progress bar on stderr",
			Destination: &c.Progress,
			Sources:     cli.EnvVars("GHRELEASE_PROGRESS"),
		},
	}
}

// Options validates the tuning and converts it into publisher options
func (c *Upload) Options() ([]usecase.PublisherOption, error) {
	if c.Parallelism < 1 {
		return nil, goerr.New("parallelism must be at least 1",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "parallelism"),
			goerr.V("value", c.Parallelism))
	}
	if c.RequestTimeout < 0 {
		return nil, goerr.New("request timeout cannot be negative",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "requestTimeout"),
			goerr.V("value", c.RequestTimeout))
	}

	return []usecase.PublisherOption{
		usecase.WithParallelism(int(c.Parallelism)),
		usecase.WithRequestTimeout(c.RequestTimeout),
	}, nil
}
