package model

import "path"

// AssetSelectionSpec describes which files under RootDirectory are uploaded
type AssetSelectionSpec struct {
	RootDirectory   string
	Includes        []string
	Excludes        []string
	DefaultExcludes bool // Also exclude SCM metadata and editor backup files
}

// SelectedAsset is a regular file chosen for upload
type SelectedAsset struct {
	AbsolutePath string
	RelativePath string // Slash separated, relative to the root directory
	ContentType  string
}

// Name returns the asset name used on the hosting service
func (a *SelectedAsset) Name() string {
	return path.Base(a.RelativePath)
}

// UploadedAsset is an asset accepted by the hosting service
type UploadedAsset struct {
	ID                 int64
	Name               string
	BrowserDownloadURL string
}

// UploadOutcome records the result of uploading one asset
type UploadOutcome struct {
	Asset     SelectedAsset
	RemoteURL string
	Err       error
}

// Succeeded reports whether the upload was accepted
func (o UploadOutcome) Succeeded() bool {
	return o.Err == nil
}

// FailureReason returns the error message of a failed upload, or empty string
func (o UploadOutcome) FailureReason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
