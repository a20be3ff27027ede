// Package notifier is the outbound side of the engine: services hand it one
// event per committed state change and it fans the event out to whatever
// sinks are configured. Delivery is best-effort; a sink failure is logged and
// never surfaces to the caller, because the state change already committed.
package notifier

import (
	"context"
	"log"
)

// Event kinds. The numeric values line up with the activity feed types the
// mobile clients already understand.
type Kind int

const (
	KindJitMention      Kind = 1
	KindStoryMention    Kind = 2
	KindRequestReceived Kind = 3
	KindRequestAccepted Kind = 4
	KindRequestRejected Kind = 5
	KindUnfriended      Kind = 6
)

func (k Kind) String() string {
	switch k {
	case KindJitMention:
		return "jit_mention"
	case KindStoryMention:
		return "story_mention"
	case KindRequestReceived:
		return "friend_request_received"
	case KindRequestAccepted:
		return "friend_request_accepted"
	case KindRequestRejected:
		return "friend_request_rejected"
	case KindUnfriended:
		return "unfriended"
	default:
		return "unknown"
	}
}

// Event is the tuple emitted after a successful state transition.
type Event struct {
	Kind         Kind
	TargetUserID uint
	ActorUserID  uint
	Payload      string
}

// Emitter receives events fire-and-forget. Implementations must not block the
// caller longer than their own I/O and must not return delivery failures the
// engine would be tempted to act on; Emit's error is for logging only.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Fanout forwards every event to all child emitters, logging and swallowing
// individual failures.
type Fanout struct {
	emitters []Emitter
}

func NewFanout(emitters ...Emitter) *Fanout {
	return &Fanout{emitters: emitters}
}

func (f *Fanout) Emit(ctx context.Context, event Event) error {
	for _, e := range f.emitters {
		if err := e.Emit(ctx, event); err != nil {
			log.Printf("notifier: emit %s to user %d failed: %v", event.Kind, event.TargetUserID, err)
		}
	}
	return nil
}

// LogEmitter just logs events; useful in development and tests.
type LogEmitter struct{}

func (LogEmitter) Emit(_ context.Context, event Event) error {
	log.Printf("notifier: %s actor=%d target=%d", event.Kind, event.ActorUserID, event.TargetUserID)
	return nil
}
