package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/utils/glob"
)

// Assets holds the asset selection configuration
type Assets struct {
	RootDir         string
	Includes        []string
	Excludes        []string
	DefaultExcludes bool
}

// Flags returns CLI flags for asset selection
func (c *Assets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "root-dir",
			Usage:       "Directory searched for assets",
			Value:       ".",
			Destination: &c.RootDir,
			Sources:     cli.EnvVars("GHRELEASE_ROOT_DIR"),
		},
		&cli.StringSliceFlag{
			Name:        "include",
			Aliases:     []string{"i"},
			Usage:       "Glob pattern of files to upload. Repeatable, comma separated",
			Destination: &c.Includes,
			Sources:     cli.EnvVars("GHRELEASE_INCLUDE"),
		},
		&cli.StringSliceFlag{
			Name:        "exclude",
			Aliases:     []string{"e"},
			Usage:       "Glob pattern of files to skip. Repeatable, comma separated",
			Destination: &c.Excludes,
			Sources:     cli.EnvVars("GHRELEASE_EXCLUDE"),
		},
		&cli.BoolFlag{
			Name:        "default-excludes",
			Usage:       "Also skip SCM metadata and editor backup files",
			Destination: &c.DefaultExcludes,
			Sources:     cli.EnvVars("GHRELEASE_DEFAULT_EXCLUDES"),
		},
	}
}

// Spec converts the configuration into an asset selection spec
func (c *Assets) Spec() *model.AssetSelectionSpec {
	return &model.AssetSelectionSpec{
		RootDirectory:   c.RootDir,
		Includes:        glob.SplitPatterns(c.Includes...),
		Excludes:        glob.SplitPatterns(c.Excludes...),
		DefaultExcludes: c.DefaultExcludes,
	}
}
