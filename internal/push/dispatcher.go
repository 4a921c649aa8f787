package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Message is the provider-independent push payload
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Client is the slice of the FCM messaging client the dispatcher needs.
// The real client caches and refreshes its provider access token through
// its injected oauth2 token source.
type Client interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Dispatcher fans a message out to a user's device tokens. Fire-and-forget:
// a failing token is logged and skipped, there is no retry.
type Dispatcher struct {
	client Client
	log    *zap.SugaredLogger
}

func NewDispatcher(client Client, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{client: client, log: log}
}

// Send delivers the message to each device token independently
func (d *Dispatcher) Send(ctx context.Context, tokens []string, msg Message) {
	for _, token := range tokens {
		m := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
			Android: &messaging.AndroidConfig{
				Notification: &messaging.AndroidNotification{Sound: "default"},
			},
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{Sound: "default"},
				},
			},
		}
		if _, err := d.client.Send(ctx, m); err != nil {
			d.log.Warnw("push send failed", "token_suffix", tokenSuffix(token), "err", err)
		}
	}
}

func tokenSuffix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[len(token)-8:]
}
