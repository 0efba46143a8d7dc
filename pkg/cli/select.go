package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/cli/config"
	"github.com/m-mizutani/ghrelease/pkg/usecase"
)

func cmdSelect(a *app) *cli.Command {
	var (
		fileCfg   config.File
		assetsCfg config.Assets
	)

	return &cli.Command{
		Name:    "select",
		Aliases: []string{"ls"},
		Usage:   "List the files publish would upload, without contacting GitHub",
		Flags:   append(fileCfg.Flags(), assetsCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := fileCfg.Apply(c, sharedFlags()...); err != nil {
				return err
			}

			selector := usecase.NewSelector(usecase.WithSelectorLogger(a.logger))
			assets, err := selector.Select(ctx, assetsCfg.Spec())
			if err != nil {
				return err
			}

			renderAssets(a.stdout, assets)
			return nil
		},
	}
}
