package main

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

// SlackNotifier posts outbound quality alerts to a single channel.
// All posting is best effort; a Slack failure never fails the
// operation that triggered it.
type SlackNotifier struct {
	api       *slack.Client
	channelID string
}

// NewSlackNotifier returns nil when Slack is not configured, which
// disables alerting.
func NewSlackNotifier(token, channelID string) *SlackNotifier {
	if token == "" || channelID == "" {
		return nil
	}
	return &SlackNotifier{api: slack.New(token), channelID: channelID}
}

// NotifyNCG alerts the quality channel about a detected falha grave.
func (n *SlackNotifier) NotifyNCG(it Interaction) {
	reason := ""
	if it.Result != nil {
		reason = it.Result.ReasonForCall
	}
	msg := fmt.Sprintf(":rotating_light: *Falha Grave (NCG) detectada*\nOperador: %s\nData: %s\nMotivo: %s\nScore final: 0",
		it.AgentName, it.Date, reason)
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(msg, false))
	if err != nil {
		log.Printf("slack ncg alert error: %v", err)
		return
	}
	log.Printf("slack ncg alert posted interaction=%s agent=%s", it.ID, it.AgentName)
}

// PostDigest posts the scheduled dashboard summary.
func (n *SlackNotifier) PostDigest(text string) {
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("slack digest post error: %v", err)
	}
}
