package notifier

import (
	"context"
	"strconv"

	"firebase.google.com/go/v4/messaging"
	"github.com/jitterapp/backend/internal/repositories"
)

// FCMEmitter pushes each event to the target user's registered devices via
// Firebase Cloud Messaging. Send failures are returned for the fanout to log;
// they never roll anything back.
type FCMEmitter struct {
	client  *messaging.Client
	devices repositories.DeviceRepository
}

func NewFCMEmitter(client *messaging.Client, devices repositories.DeviceRepository) *FCMEmitter {
	return &FCMEmitter{client: client, devices: devices}
}

func (e *FCMEmitter) Emit(ctx context.Context, event Event) error {
	tokens, err := e.devices.TokensForUser(event.TargetUserID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: "Jitter",
			Body:  description(event.Kind),
		},
		Data: map[string]string{
			"kind":    event.Kind.String(),
			"actor":   strconv.FormatUint(uint64(event.ActorUserID), 10),
			"payload": event.Payload,
		},
	}
	_, err = e.client.SendEachForMulticast(ctx, message)
	return err
}
