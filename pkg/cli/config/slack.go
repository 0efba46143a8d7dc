package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	slackinfra "github.com/m-mizutani/ghrelease/pkg/infra/slack"
)

// Slack holds release notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified after publishing",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("GHRELEASE_SLACK_WEBHOOK_URL"),
		},
	}
}

// Notifier returns nil when no webhook is configured
func (c *Slack) Notifier(repo model.Repository) interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slackinfra.NewNotifier(c.WebhookURL, repo)
}
