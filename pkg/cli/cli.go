package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/cli/config"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
	)
	a := &app{stdout: stdout, stderr: stderr, logger: slog.Default()}
	runID := uuid.NewString()

	cmd := &cli.Command{
		Name:      "ghrelease",
		Usage:     "Publish GitHub releases with build artifacts",
		Version:   types.Version,
		Flags:     append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure(stderr)
			if err != nil {
				return nil, err
			}
			a.logger = logger.With("run_id", runID)
			slog.SetDefault(a.logger)

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdPublish(a),
			cmdSelect(a),
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		a.logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Capture(err, runID)
		return err
	}

	return nil
}

// sharedFlags lists every option a config file may carry, whichever command reads it
func sharedFlags() []cli.Flag {
	var (
		githubCfg  config.GitHub
		releaseCfg config.Release
		assetsCfg  config.Assets
		uploadCfg  config.Upload
		slackCfg   config.Slack
	)
	var flags []cli.Flag
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, releaseCfg.Flags()...)
	flags = append(flags, assetsCfg.Flags()...)
	flags = append(flags, uploadCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	return flags
}
