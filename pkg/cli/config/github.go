package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	githubinfra "github.com/m-mizutani/ghrelease/pkg/infra/github"
)

// GitHub holds GitHub connection configuration
type GitHub struct {
	Token          string `masq:"secret"`
	APIURL         string
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	Repository     string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GHRELEASE_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "GitHub Enterprise Server API URL",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GHRELEASE_API_URL"),
		},
		&cli.Int64Flag{
			Name:        "app-id",
			Usage:       "GitHub App ID, used instead of token when set",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("GHRELEASE_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("GHRELEASE_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "app-private-key",
			Usage:       "GitHub App private key in PEM format, or path to the PEM file",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("GHRELEASE_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Aliases:     []string{"r"},
			Usage:       "Target repository in owner/name form",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GHRELEASE_REPOSITORY", "GITHUB_REPOSITORY"),
		},
	}
}

// Credential resolves the authentication method. A private key that does not look
// like PEM content is read as a file path.
func (c *GitHub) Credential() (githubinfra.Credential, error) {
	cred := githubinfra.Credential{
		Token:          c.Token,
		AppID:          c.AppID,
		InstallationID: c.InstallationID,
	}
	if c.AppID == 0 {
		return cred, nil
	}

	key := strings.TrimSpace(c.PrivateKey)
	if key != "" && !strings.HasPrefix(key, "-----BEGIN") {
		data, err := os.ReadFile(key)
		if err != nil {
			return cred, goerr.Wrap(err, "failed to read GitHub App private key",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "appPrivateKey"),
				goerr.V("path", key))
		}
		key = string(data)
	}
	if key != "" {
		cred.PrivateKey = []byte(key)
	}
	return cred, nil
}

// Configure validates the credential and the repository, in that order, and builds
// the hosting client
func (c *GitHub) Configure() (interfaces.HostingClient, model.Repository, error) {
	cred, err := c.Credential()
	if err != nil {
		return nil, model.Repository{}, err
	}
	if err := cred.Validate(); err != nil {
		return nil, model.Repository{}, err
	}

	repo, err := model.ParseRepository(c.Repository)
	if err != nil {
		return nil, model.Repository{}, err
	}

	var opts []githubinfra.Option
	if c.APIURL != "" {
		opts = append(opts, githubinfra.WithAPIURL(c.APIURL))
	}

	client, err := githubinfra.NewClient(cred, repo, opts...)
	if err != nil {
		return nil, model.Repository{}, err
	}
	return client, repo, nil
}
