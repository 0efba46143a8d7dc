package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/cli/config"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/usecase"
)

func cmdPublish(a *app) *cli.Command {
	var (
		fileCfg    config.File
		githubCfg  config.GitHub
		releaseCfg config.Release
		assetsCfg  config.Assets
		uploadCfg  config.Upload
		slackCfg   config.Slack
	)

	var flags []cli.Flag
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, releaseCfg.Flags()...)
	flags = append(flags, assetsCfg.Flags()...)
	flags = append(flags, uploadCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Create a release and upload the selected assets",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := fileCfg.Apply(c, sharedFlags()...); err != nil {
				return err
			}

			client, repo, err := githubCfg.Configure()
			if err != nil {
				return err
			}

			opts, err := uploadCfg.Options()
			if err != nil {
				return err
			}
			opts = append(opts, usecase.WithLogger(a.logger.With("repository", repo.String())))
			if notifier := slackCfg.Notifier(repo); notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}

			var bar *progressbar.ProgressBar
			if uploadCfg.Progress {
				bar = newProgressBar(a.stderr)
				opts = append(opts, usecase.WithProgress(func(model.UploadOutcome) {
					_ = bar.Add(1)
				}))
			}

			result, err := usecase.NewPublisher(client, opts...).Publish(ctx, releaseCfg.Request(), assetsCfg.Spec())
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			renderOutcomes(a.stderr, result)
			fmt.Fprintln(a.stdout, result.HTMLURL)
			return nil
		},
	}
}

// newProgressBar counts uploads without a total; assets are selected after the
// release is created
func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Uploading assets"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}
