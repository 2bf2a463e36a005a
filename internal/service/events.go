package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

// publishEvent fills in id, time and actor, then dispatches. Delivery failures
// never fail the operation that produced the event.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.ActorID == nil {
		if actor, ok := events.ActorFromContext(ctx); ok {
			event.ActorID = &actor
		}
	}
	_ = dispatcher.Publish(ctx, event)
}
