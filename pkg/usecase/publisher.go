package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	"github.com/m-mizutani/ghrelease/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

type publisher struct {
	client      interfaces.HostingClient
	selector    interfaces.AssetSelector
	notifier    interfaces.Notifier
	logger      *slog.Logger
	parallelism int
	timeout     time.Duration
	progress    func(model.UploadOutcome)
}

// PublisherOption configures the Release Publisher
type PublisherOption func(*publisher)

// WithLogger sets the log sink for progress messages
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *publisher) {
		p.logger = logger
	}
}

// WithSelector replaces the default Artifact Selector
func WithSelector(selector interfaces.AssetSelector) PublisherOption {
	return func(p *publisher) {
		p.selector = selector
	}
}

// WithNotifier announces every completed release
func WithNotifier(notifier interfaces.Notifier) PublisherOption {
	return func(p *publisher) {
		p.notifier = notifier
	}
}

// WithParallelism sets how many assets are uploaded at once. Default is 1.
func WithParallelism(n int) PublisherOption {
	return func(p *publisher) {
		p.parallelism = n
	}
}

// WithRequestTimeout limits each call to the hosting service. Zero means no limit.
func WithRequestTimeout(d time.Duration) PublisherOption {
	return func(p *publisher) {
		p.timeout = d
	}
}

// WithProgress registers a callback invoked after each upload. It is called from
// upload goroutines when parallelism is greater than 1.
func WithProgress(fn func(model.UploadOutcome)) PublisherOption {
	return func(p *publisher) {
		p.progress = fn
	}
}

// NewPublisher creates the Release Publisher
func NewPublisher(client interfaces.HostingClient, opts ...PublisherOption) interfaces.ReleasePublisher {
	p := &publisher{
		client:      client,
		logger:      slog.Default(),
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.selector == nil {
		p.selector = NewSelector(WithSelectorLogger(p.logger))
	}
	return p
}

// Publish creates the release and uploads every selected asset. Once the release
// exists, upload failures are recorded in the result instead of returned as error.
func (p *publisher) Publish(ctx context.Context, req *model.ReleaseRequest, spec *model.AssetSelectionSpec) (*model.ReleaseResult, error) {
	logger := p.logger.With("tag", req.TagName)

	stage := model.StageValidating
	moveTo := func(next model.PublishStage) {
		logger.Debug("Publish stage changed", "from", stage.String(), "stage", next.String())
		stage = next
	}
	fail := func(err error) (*model.ReleaseResult, error) {
		moveTo(model.StageFailed)
		return nil, err
	}

	if err := validateRequest(req, spec); err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(goerr.Wrap(err, "publish cancelled before release creation"))
	}
	// Once started, publishing runs to completion. Only the per-call timeout bounds it.
	ctx = context.WithoutCancel(ctx)

	body, err := resolveDescription(req, spec.RootDirectory)
	if err != nil {
		return fail(err)
	}
	moveTo(model.StageDescriptionResolved)

	logger.Info("Creating release",
		"commitish", req.Commitish,
		"pre_release", req.PreRelease,
		"draft", req.Draft,
	)

	callCtx, cancel := p.callContext(ctx)
	release, err := p.client.CreateRelease(callCtx, req, body)
	cancel()
	if err != nil {
		logger.Error("Failed to create release", "error", err)
		return fail(goerr.Wrap(err, "failed to create release",
			goerr.T(types.ErrTagRemoteAPI),
			goerr.V("tag", req.TagName)))
	}
	moveTo(model.StageReleaseCreated)

	logger.Info("Created release", "url", release.HTMLURL, "release_id", release.ID)

	assets, err := p.selector.Select(ctx, spec)
	if err != nil {
		logger.Error("Failed to select release assets", "error", err)
		return fail(err)
	}
	moveTo(model.StageUploading)

	results := async.Map(ctx, assets, p.parallelism, func(ctx context.Context, asset *model.SelectedAsset) (model.UploadOutcome, error) {
		outcome := p.upload(ctx, logger, release, asset)
		if p.progress != nil {
			p.progress(outcome)
		}
		return outcome, nil
	})

	result := &model.ReleaseResult{
		HTMLURL:  release.HTMLURL,
		Outcomes: make([]model.UploadOutcome, len(assets)),
	}
	for i, r := range results {
		if r.Err != nil {
			// only a panic in upload reaches here
			logger.Error("Failed to upload asset", "path", assets[i].RelativePath, "error", r.Err)
			result.Outcomes[i] = model.UploadOutcome{Asset: *assets[i], Err: r.Err}
			continue
		}
		result.Outcomes[i] = r.Value
	}
	moveTo(model.StageCompleted)

	logger.Info("Published release",
		"url", result.HTMLURL,
		"uploaded", len(result.Succeeded()),
		"failed", len(result.Failed()),
	)

	if p.notifier != nil {
		if err := p.notifier.NotifyRelease(ctx, req, result); err != nil {
			logger.Warn("Failed to send release notification", "error", err)
		}
	}

	return result, nil
}

func (p *publisher) upload(ctx context.Context, logger *slog.Logger, release *model.Release, asset *model.SelectedAsset) model.UploadOutcome {
	logger.Info("Uploading asset",
		"path", asset.RelativePath,
		"content_type", asset.ContentType,
	)

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	uploaded, err := p.client.UploadAsset(callCtx, release, asset)
	if err != nil {
		logger.Error("Failed to upload asset",
			"path", asset.RelativePath,
			"error", err,
		)
		return model.UploadOutcome{Asset: *asset, Err: err}
	}

	logger.Info("Uploaded asset",
		"path", asset.RelativePath,
		"url", uploaded.BrowserDownloadURL,
	)
	return model.UploadOutcome{Asset: *asset, RemoteURL: uploaded.BrowserDownloadURL}
}

func (p *publisher) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return ctx, func() {}
}

// validateRequest checks the request fields in the order users are told about them.
// Credential and repository are checked when the hosting client is built.
func validateRequest(req *model.ReleaseRequest, spec *model.AssetSelectionSpec) error {
	if strings.TrimSpace(req.TagName) == "" {
		return goerr.New("tagName cannot be blank",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "tagName"))
	}

	if _, err := compileSelection(spec); err != nil {
		return err
	}

	hasText := strings.TrimSpace(req.Description) != ""
	hasFile := strings.TrimSpace(req.DescriptionFile) != ""
	switch {
	case !hasText && !hasFile:
		return goerr.New("either descriptionFile or description must be specified",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "description"))
	case hasText && hasFile:
		return goerr.New("only one of descriptionFile or description can be specified",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "descriptionFile"))
	}

	return nil
}

// resolveDescription returns the literal description or the UTF-8 content of the
// description file. Relative file paths are resolved against root.
func resolveDescription(req *model.ReleaseRequest, root string) (string, error) {
	if strings.TrimSpace(req.DescriptionFile) == "" {
		return req.Description, nil
	}

	path := req.DescriptionFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read descriptionFile",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "descriptionFile"),
			goerr.V("path", path))
	}
	if !utf8.Valid(data) {
		return "", goerr.New("descriptionFile is not valid UTF-8 text",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "descriptionFile"),
			goerr.V("path", path))
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return "", goerr.New("descriptionFile is empty",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "descriptionFile"),
			goerr.V("path", path))
	}

	return text, nil
}
