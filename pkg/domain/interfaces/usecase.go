package interfaces

import (
	"context"
	"io/fs"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

// AssetSelector resolves an AssetSelectionSpec into files to upload
type AssetSelector interface {
	// Select returns regular files ordered by relative path
	Select(ctx context.Context, spec *model.AssetSelectionSpec) ([]*model.SelectedAsset, error)
}

// ContentTypeProber infers the content type of a file. An empty result means unknown.
type ContentTypeProber interface {
	Probe(fsys fs.FS, name string) (string, error)
}

// ReleasePublisher creates a release and uploads its assets
type ReleasePublisher interface {
	Publish(ctx context.Context, req *model.ReleaseRequest, spec *model.AssetSelectionSpec) (*model.ReleaseResult, error)
}
