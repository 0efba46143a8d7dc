package interfaces

import (
	"context"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

// HostingClient defines operations for publishing releases on the hosting service
type HostingClient interface {
	// CreateRelease creates a release for req.TagName with the resolved description as body
	CreateRelease(ctx context.Context, req *model.ReleaseRequest, body string) (*model.Release, error)

	// UploadAsset uploads a local file as an asset of release
	UploadAsset(ctx context.Context, release *model.Release, asset *model.SelectedAsset) (*model.UploadedAsset, error)
}

// Notifier announces a published release
type Notifier interface {
	NotifyRelease(ctx context.Context, req *model.ReleaseRequest, result *model.ReleaseResult) error
}
