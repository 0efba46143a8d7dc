package slack

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

const (
	colorSuccess = "good"
	colorWarning = "warning"
)

type notifier struct {
	webhookURL string
	repository string
	httpClient *http.Client
}

// Option configures the Slack notifier
type Option func(*notifier)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(c *http.Client) Option {
	return func(n *notifier) {
		n.httpClient = c
	}
}

// NewNotifier posts release announcements to a Slack incoming webhook
func NewNotifier(webhookURL string, repo model.Repository, opts ...Option) interfaces.Notifier {
	n := &notifier{
		webhookURL: webhookURL,
		repository: repo.String(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *notifier) NotifyRelease(ctx context.Context, req *model.ReleaseRequest, result *model.ReleaseResult) error {
	msg := buildMessage(n.repository, req, result)
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook",
			goerr.T(types.ErrTagRemoteAPI),
			goerr.V("repository", n.repository),
			goerr.V("tag", req.TagName))
	}
	return nil
}

func buildMessage(repository string, req *model.ReleaseRequest, result *model.ReleaseResult) *slack.WebhookMessage {
	title := req.Name
	if title == "" {
		title = req.TagName
	}

	kind := "Release"
	switch {
	case req.Draft:
		kind = "Draft release"
	case req.PreRelease:
		kind = "Pre-release"
	}

	succeeded := result.Succeeded()
	failed := result.Failed()

	color := colorSuccess
	if len(failed) > 0 {
		color = colorWarning
	}

	fields := []slack.AttachmentField{
		{Title: "Repository", Value: repository, Short: true},
		{Title: "Tag", Value: req.TagName, Short: true},
		{Title: "Uploaded", Value: fmt.Sprintf("%d", len(succeeded)), Short: true},
		{Title: "Failed", Value: fmt.Sprintf("%d", len(failed)), Short: true},
	}
	if len(failed) > 0 {
		var lines []string
		for _, o := range failed {
			lines = append(lines, fmt.Sprintf("`%s`: %s", o.Asset.RelativePath, o.FailureReason()))
		}
		fields = append(fields, slack.AttachmentField{Title: "Failed assets", Value: strings.Join(lines, "\n")})
	}

	return &slack.WebhookMessage{
		Text: fmt.Sprintf("%s <%s|%s> published to %s", kind, result.HTMLURL, title, repository),
		Attachments: []slack.Attachment{
			{
				Color:     color,
				Title:     title,
				TitleLink: result.HTMLURL,
				Fields:    fields,
			},
		},
	}
}
