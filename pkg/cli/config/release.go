package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

// Release holds the attributes of the release to create
type Release struct {
	TagName         string
	Commitish       string
	Name            string
	Description     string
	DescriptionFile string
	PreRelease      bool
	Draft           bool
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tag",
			Aliases:     []string{"t"},
			Usage:       "Tag name of the release",
			Destination: &c.TagName,
			Sources:     cli.EnvVars("GHRELEASE_TAG"),
		},
		&cli.StringFlag{
			Name:        "commitish",
			Usage:       "Branch, tag or commit SHA the tag is created from when it does not exist",
			Destination: &c.Commitish,
			Sources:     cli.EnvVars("GHRELEASE_COMMITISH"),
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Release title. The tag name is used when empty",
			Destination: &c.Name,
			Sources:     cli.EnvVars("GHRELEASE_NAME"),
		},
		&cli.StringFlag{
			Name:        "description",
			Aliases:     []string{"d"},
			Usage:       "Release description",
			Destination: &c.Description,
			Sources:     cli.EnvVars("GHRELEASE_DESCRIPTION"),
		},
		&cli.StringFlag{
			Name:        "description-file",
			Usage:       "File whose content becomes the release description, relative to root-dir",
			Destination: &c.DescriptionFile,
			Sources:     cli.EnvVars("GHRELEASE_DESCRIPTION_FILE"),
		},
		&cli.BoolFlag{
			Name:        "pre-release",
			Usage:       "Mark the release as a pre-release",
			Destination: &c.PreRelease,
			Sources:     cli.EnvVars("GHRELEASE_PRE_RELEASE"),
		},
		&cli.BoolFlag{
			Name:        "draft",
			Usage:       "Create the release as a draft",
			Destination: &c.Draft,
			Sources:     cli.EnvVars("GHRELEASE_DRAFT"),
		},
	}
}

// Request converts the configuration into a release request
func (c *Release) Request() *model.ReleaseRequest {
	return &model.ReleaseRequest{
		TagName:         c.TagName,
		Commitish:       c.Commitish,
		Name:            c.Name,
		Description:     c.Description,
		DescriptionFile: c.DescriptionFile,
		PreRelease:      c.PreRelease,
		Draft:           c.Draft,
	}
}
