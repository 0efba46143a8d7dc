package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

func TestParseRepository(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    model.Repository
		wantErr bool
	}{
		{name: "owner and name", input: "octo/tool", want: model.Repository{Owner: "octo", Name: "tool"}},
		{name: "surrounding spaces", input: " octo/tool ", want: model.Repository{Owner: "octo", Name: "tool"}},
		{name: "blank", input: "  ", wantErr: true},
		{name: "no slash", input: "octo", wantErr: true},
		{name: "empty owner", input: "/tool", wantErr: true},
		{name: "empty name", input: "octo/", wantErr: true},
		{name: "too many parts", input: "octo/tool/extra", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, err := model.ParseRepository(tc.input)
			if tc.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
				gt.String(t, err.Error()).Contains("repositoryName")
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, repo, tc.want)
			gt.Equal(t, repo.String(), "octo/tool")
		})
	}
}

func TestPublishStage_String(t *testing.T) {
	gt.Equal(t, model.StageValidating.String(), "validating")
	gt.Equal(t, model.StageDescriptionResolved.String(), "description_resolved")
	gt.Equal(t, model.StageReleaseCreated.String(), "release_created")
	gt.Equal(t, model.StageUploading.String(), "uploading")
	gt.Equal(t, model.StageCompleted.String(), "completed")
	gt.Equal(t, model.StageFailed.String(), "failed")
	gt.Equal(t, model.PublishStage(99).String(), "unknown")
}

func TestReleaseResult_Outcomes(t *testing.T) {
	result := &model.ReleaseResult{
		HTMLURL: "https://github.com/octo/tool/releases/tag/v1.0.0",
		Outcomes: []model.UploadOutcome{
			{Asset: model.SelectedAsset{RelativePath: "dist/a.tar.gz"}, RemoteURL: "https://example.com/a.tar.gz"},
			{Asset: model.SelectedAsset{RelativePath: "dist/b.zip"}, Err: errors.New("502 Bad Gateway")},
			{Asset: model.SelectedAsset{RelativePath: "dist/c.deb"}, RemoteURL: "https://example.com/c.deb"},
		},
	}

	succeeded := result.Succeeded()
	gt.Array(t, succeeded).Length(2)
	gt.Equal(t, succeeded[0].Asset.Name(), "a.tar.gz")
	gt.Equal(t, succeeded[1].Asset.Name(), "c.deb")
	gt.Equal(t, succeeded[0].FailureReason(), "")

	failed := result.Failed()
	gt.Array(t, failed).Length(1)
	gt.Equal(t, failed[0].Asset.Name(), "b.zip")
	gt.Equal(t, failed[0].FailureReason(), "502 Bad Gateway")
}
