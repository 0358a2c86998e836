package Slack

import (
	"log"

	"github.com/slack-go/slack"
)

// AlertClient posts operational failures from the detail runs to a Slack
// channel. Delivery is best effort; a Slack outage must never affect a run.
type AlertClient struct {
	api     *slack.Client
	channel string
}

// NewAlertClient requires a bot token with the chat:write scope.
func NewAlertClient(token, channel string) *AlertClient {
	return &AlertClient{
		api:     slack.New(token),
		channel: channel,
	}
}

func (c *AlertClient) Alert(message string) {
	if c == nil || c.api == nil {
		return
	}

	_, _, err := c.api.PostMessage(c.channel, slack.MsgOptionText(":rotating_light: "+message, false))
	if err != nil {
		log.Printf("Error sending Slack alert: %v", err)
	}
}
