package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/cli/config"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

func testRepo() model.Repository {
	return model.Repository{Owner: "octo", Name: "tool"}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return writeConfigAs(t, "ghrelease.toml", content)
}

func writeConfigAs(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type fileTarget struct {
	file    config.File
	release config.Release
	assets  config.Assets
	upload  config.Upload
}

func (f *fileTarget) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, f.file.Flags()...)
	flags = append(flags, f.release.Flags()...)
	flags = append(flags, f.assets.Flags()...)
	flags = append(flags, f.upload.Flags()...)
	return flags
}

func TestFile_Apply(t *testing.T) {
	path := writeConfig(t, `
tag = "v1.0.0"
description = "from file"
pre-release = true
include = ["target/*.deb", "target/*.tar.gz"]
parallelism = 4
request-timeout = "30s"
`)

	var target fileTarget
	err := runCommand(t, target.flags(), []string{
		"--config", path,
		"--description", "from flag",
	}, func(cmd *cli.Command) error {
		return target.file.Apply(cmd)
	})
	gt.NoError(t, err)

	gt.Equal(t, target.release.TagName, "v1.0.0")
	gt.Equal(t, target.release.Description, "from flag")
	gt.True(t, target.release.PreRelease)
	gt.Array(t, target.assets.Includes).Equal([]string{"target/*.deb", "target/*.tar.gz"})
	gt.Equal(t, target.upload.Parallelism, int64(4))
	gt.Equal(t, target.upload.RequestTimeout.Seconds(), 30.0)
}

func TestFile_Apply_YAML(t *testing.T) {
	path := writeConfigAs(t, "ghrelease.yml", `
tag: v1.2.0
draft: true
exclude:
  - "**/*.jar"
  - "**/*.sha1"
parallelism: 3
`)

	var target fileTarget
	err := runCommand(t, target.flags(), []string{"--config", path}, func(cmd *cli.Command) error {
		return target.file.Apply(cmd)
	})
	gt.NoError(t, err)

	gt.Equal(t, target.release.TagName, "v1.2.0")
	gt.True(t, target.release.Draft)
	gt.Array(t, target.assets.Excludes).Equal([]string{"**/*.jar", "**/*.sha1"})
	gt.Equal(t, target.upload.Parallelism, int64(3))
}

func TestFile_Apply_EnvWins(t *testing.T) {
	path := writeConfig(t, `tag = "v1.0.0"`)
	t.Setenv("GHRELEASE_TAG", "v9.9.9")

	var target fileTarget
	err := runCommand(t, target.flags(), []string{"--config", path}, func(cmd *cli.Command) error {
		return target.file.Apply(cmd)
	})
	gt.NoError(t, err)
	gt.Equal(t, target.release.TagName, "v9.9.9")
}

func TestFile_Apply_NoFile(t *testing.T) {
	var target fileTarget
	err := runCommand(t, target.flags(), []string{"--tag", "v1"}, func(cmd *cli.Command) error {
		return target.file.Apply(cmd)
	})
	gt.NoError(t, err)
	gt.Equal(t, target.release.TagName, "v1")
}

func TestFile_Apply_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: `tags = "v1"`},
		{name: "malformed TOML", content: `tag = `},
		{name: "invalid number", content: `parallelism = "many"`},
		{name: "nested table", content: "[release]\ntag = \"v1\""},
		{name: "recursive config", content: `config = "other.toml"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)

			var target fileTarget
			err := runCommand(t, target.flags(), []string{"--config", path}, func(cmd *cli.Command) error {
				return target.file.Apply(cmd)
			})
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
		})
	}

	t.Run("keys of other commands are skipped", func(t *testing.T) {
		path := writeConfig(t, "tag = \"v1\"\ninclude = [\"dist/*\"]")

		var file config.File
		var assets config.Assets
		var release config.Release
		flags := append(file.Flags(), assets.Flags()...)
		err := runCommand(t, flags, []string{"--config", path}, func(cmd *cli.Command) error {
			return file.Apply(cmd, release.Flags()...)
		})
		gt.NoError(t, err)
		gt.Array(t, assets.Includes).Equal([]string{"dist/*"})
	})

	t.Run("missing file", func(t *testing.T) {
		var target fileTarget
		err := runCommand(t, target.flags(), []string{"--config", filepath.Join(t.TempDir(), "none.toml")}, func(cmd *cli.Command) error {
			return target.file.Apply(cmd)
		})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})
}
