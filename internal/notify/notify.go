// Package notify sends push notifications through FCM.
package notify

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// Payload is one notification's user-visible text plus the client-side
// routing data.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher is the delivery surface the alert services depend on. The production
// implementation is FCM; tests substitute fakes.
type Pusher interface {
	// SendToTopic broadcasts to every subscriber of the topic.
	SendToTopic(ctx context.Context, topic string, p Payload) error
	// SendToTokens best-effort multicasts to the given device tokens and
	// returns the number of successful deliveries.
	SendToTokens(ctx context.Context, tokens []string, p Payload) (int, error)
}

// FCMPusher sends through a Firebase messaging client.
type FCMPusher struct {
	client *messaging.Client
}

// NewFCMPusher wraps a messaging client.
func NewFCMPusher(client *messaging.Client) *FCMPusher {
	return &FCMPusher{client: client}
}

func (f *FCMPusher) SendToTopic(ctx context.Context, topic string, p Payload) error {
	_, err := f.client.Send(ctx, &messaging.Message{
		Topic:        topic,
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Data:         p.Data,
	})
	if err != nil {
		return fmt.Errorf("fcm topic send to %q: %w", topic, err)
	}
	return nil
}

func (f *FCMPusher) SendToTokens(ctx context.Context, tokens []string, p Payload) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	resp, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Data:         p.Data,
	})
	if err != nil {
		return 0, fmt.Errorf("fcm multicast send: %w", err)
	}
	return resp.SuccessCount, nil
}
