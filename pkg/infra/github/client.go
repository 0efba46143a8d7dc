package github

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

const defaultAPIURL = "https://api.github.com/"

// Credential authenticates against GitHub. Token is used unless AppID is set.
type Credential struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     []byte `masq:"secret"`
}

func (c Credential) isApp() bool {
	return c.AppID != 0
}

// Validate checks that one complete authentication method is configured
func (c Credential) Validate() error {
	if !c.isApp() {
		if strings.TrimSpace(c.Token) == "" {
			return goerr.New("token cannot be blank",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "token"))
		}
		return nil
	}

	if c.InstallationID == 0 {
		return goerr.New("installation ID is required for GitHub App authentication",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "appInstallationId"))
	}
	if len(c.PrivateKey) == 0 {
		return goerr.New("private key is required for GitHub App authentication",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "appPrivateKey"))
	}
	return nil
}

type client struct {
	githubClient *github.Client
	repo         model.Repository
}

type options struct {
	apiURL    string
	transport http.RoundTripper
}

// Option configures the GitHub client
type Option func(*options)

// WithAPIURL points the client to a GitHub Enterprise Server, given either as the host
// root or as its /api/v3 endpoint. The upload endpoint is derived from the same host.
func WithAPIURL(url string) Option {
	return func(o *options) {
		o.apiURL = url
	}
}

// WithTransport replaces http.DefaultTransport as the base transport
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// NewClient creates a GitHub client bound to a single repository
func NewClient(cred Credential, repo model.Repository, opts ...Option) (interfaces.HostingClient, error) {
	o := &options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}

	enterprise := o.apiURL != "" && strings.TrimSuffix(o.apiURL, "/")+"/" != defaultAPIURL

	if err := cred.Validate(); err != nil {
		return nil, err
	}

	var httpClient *http.Client
	if cred.isApp() {
		itr, err := ghinstallation.New(o.transport, cred.AppID, cred.InstallationID, cred.PrivateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "appPrivateKey"),
				goerr.V("app_id", cred.AppID))
		}
		if enterprise {
			itr.BaseURL = enterpriseRoot(o.apiURL) + "/api/v3"
		}
		httpClient = &http.Client{Transport: itr}
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(cred.Token)})
		httpClient = &http.Client{Transport: &oauth2.Transport{Source: ts, Base: o.transport}}
	}

	githubClient := github.NewClient(httpClient)
	if enterprise {
		root := enterpriseRoot(o.apiURL)
		c, err := githubClient.WithEnterpriseURLs(root, root)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "apiUrl"),
				goerr.V("url", o.apiURL))
		}
		githubClient = c
	}

	return &client{
		githubClient: githubClient,
		repo:         repo,
	}, nil
}

// enterpriseRoot strips the API path so that both "https://ghe" and "https://ghe/api/v3"
// yield "https://ghe". go-github appends api/v3/ and api/uploads/ to the root.
func enterpriseRoot(apiURL string) string {
	return strings.TrimSuffix(strings.TrimSuffix(apiURL, "/"), "/api/v3")
}

// CreateRelease creates a release with the given body
func (c *client) CreateRelease(ctx context.Context, req *model.ReleaseRequest, body string) (*model.Release, error) {
	release := &github.RepositoryRelease{
		TagName:    github.Ptr(req.TagName),
		Body:       github.Ptr(body),
		Draft:      github.Ptr(req.Draft),
		Prerelease: github.Ptr(req.PreRelease),
	}
	if req.Commitish != "" {
		release.TargetCommitish = github.Ptr(req.Commitish)
	}
	if req.Name != "" {
		release.Name = github.Ptr(req.Name)
	}

	created, resp, err := c.githubClient.Repositories.CreateRelease(ctx, c.repo.Owner, c.repo.Name, release)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub release",
			goerr.T(types.ErrTagRemoteAPI),
			goerr.V("repository", c.repo.String()),
			goerr.V("tag", req.TagName),
			goerr.V("status", statusCode(resp)))
	}

	return &model.Release{
		ID:        created.GetID(),
		TagName:   created.GetTagName(),
		HTMLURL:   created.GetHTMLURL(),
		UploadURL: created.GetUploadURL(),
	}, nil
}

// UploadAsset streams a selected file to the release
func (c *client) UploadAsset(ctx context.Context, release *model.Release, asset *model.SelectedAsset) (*model.UploadedAsset, error) {
	f, err := os.Open(asset.AbsolutePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open asset", goerr.V("path", asset.AbsolutePath))
	}
	defer f.Close()

	opts := &github.UploadOptions{
		Name:      asset.Name(),
		MediaType: asset.ContentType,
	}
	uploaded, resp, err := c.githubClient.Repositories.UploadReleaseAsset(ctx, c.repo.Owner, c.repo.Name, release.ID, opts, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.T(types.ErrTagRemoteAPI),
			goerr.V("repository", c.repo.String()),
			goerr.V("release_id", release.ID),
			goerr.V("name", asset.Name()),
			goerr.V("status", statusCode(resp)))
	}

	return &model.UploadedAsset{
		ID:                 uploaded.GetID(),
		Name:               uploaded.GetName(),
		BrowserDownloadURL: uploaded.GetBrowserDownloadURL(),
	}, nil
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
