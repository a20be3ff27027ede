package notifier

import (
	"context"

	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/repositories"
)

// ActivityEmitter persists each event as a row in the recipient's activity
// feed.
type ActivityEmitter struct {
	activities repositories.ActivityRepository
}

func NewActivityEmitter(activities repositories.ActivityRepository) *ActivityEmitter {
	return &ActivityEmitter{activities: activities}
}

func (e *ActivityEmitter) Emit(_ context.Context, event Event) error {
	activity := &models.Activity{
		Type:        int(event.Kind),
		UserID:      event.TargetUserID,
		FromUserID:  event.ActorUserID,
		Description: description(event.Kind),
		Message:     event.Payload,
	}
	return e.activities.CreateActivity(activity)
}

func description(kind Kind) string {
	switch kind {
	case KindJitMention:
		return "mentioned in a jit"
	case KindStoryMention:
		return "mentioned in a story"
	case KindRequestReceived:
		return "received friend request"
	case KindRequestAccepted:
		return "accepted friend request"
	case KindRequestRejected:
		return "rejected friend request"
	case KindUnfriended:
		return "unfriended"
	default:
		return ""
	}
}
