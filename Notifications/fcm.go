package Notifications

import (
	"context"
	"fmt"
	"log"

	"Garrison/Details"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Notifier sends detail reminders over Firebase Cloud Messaging. It
// implements the Details notifier contract.
type Notifier struct {
	client *messaging.Client
}

// NewNotifier derives the FCM client from the shared Firebase app.
func NewNotifier(ctx context.Context, app *firebase.App) (*Notifier, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %v", err)
	}
	return &Notifier{client: client}, nil
}

// SendReminder multicasts one reminder to all of a person's device tokens
// and reports per-token success/failure counts. Individual token failures
// are logged, not returned; only a transport-level failure is an error.
func (n *Notifier) SendReminder(ctx context.Context, tokens []string, reminder Details.Reminder) (int, int, error) {
	if n.client == nil {
		return 0, 0, fmt.Errorf("messaging client not initialized")
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: reminder.Title,
			Body:  reminder.Body,
		},
		Data: reminder.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}

	response, err := n.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return 0, 0, fmt.Errorf("error sending reminder: %v", err)
	}

	for i, resp := range response.Responses {
		if resp.Error != nil {
			log.Printf("Failed to deliver to token %d of %d: %v", i+1, len(tokens), resp.Error)
		}
	}

	return response.SuccessCount, response.FailureCount, nil
}
