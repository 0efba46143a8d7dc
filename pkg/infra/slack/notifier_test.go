package slack_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	slackinfra "github.com/m-mizutani/ghrelease/pkg/infra/slack"
)

func TestNotifier_NotifyRelease(t *testing.T) {
	var received slack.WebhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Method, http.MethodPost)
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	n := slackinfra.NewNotifier(server.URL, model.Repository{Owner: "octo", Name: "tool"},
		slackinfra.WithHTTPClient(server.Client()))

	err := n.NotifyRelease(context.Background(),
		&model.ReleaseRequest{TagName: "v1.0.0", PreRelease: true},
		&model.ReleaseResult{
			HTMLURL: "https://github.com/octo/tool/releases/tag/v1.0.0",
			Outcomes: []model.UploadOutcome{
				{Asset: model.SelectedAsset{RelativePath: "dist/a.zip"}, RemoteURL: "https://example.com/a.zip"},
				{Asset: model.SelectedAsset{RelativePath: "dist/b.zip"}, Err: errors.New("timeout")},
			},
		})
	gt.NoError(t, err)

	gt.String(t, received.Text).Contains("Pre-release")
	gt.String(t, received.Text).Contains("octo/tool")
	gt.Array(t, received.Attachments).Length(1)
	gt.Equal(t, received.Attachments[0].Color, "warning")
	gt.Equal(t, received.Attachments[0].TitleLink, "https://github.com/octo/tool/releases/tag/v1.0.0")
	gt.Array(t, received.Attachments[0].Fields).Length(5)
	gt.String(t, received.Attachments[0].Fields[4].Value).Contains("dist/b.zip")
}

func TestNotifier_WebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("invalid_token"))
	}))
	defer server.Close()

	n := slackinfra.NewNotifier(server.URL, model.Repository{Owner: "octo", Name: "tool"},
		slackinfra.WithHTTPClient(server.Client()))

	err := n.NotifyRelease(context.Background(),
		&model.ReleaseRequest{TagName: "v1.0.0"},
		&model.ReleaseResult{HTMLURL: "https://github.com/octo/tool/releases/tag/v1.0.0"})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagRemoteAPI))
}
