package events

import (
	"context"
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRequestAssigned      EventType = "request_assigned"
	EventJobProblemCreated    EventType = "job_problem_created"
	EventJobProblemDeleted    EventType = "job_problem_deleted"
)

// AllEventTypes lists every type the service emits.
var AllEventTypes = []EventType{
	EventRequestCreated,
	EventRequestStatusChanged,
	EventRequestAssigned,
	EventJobProblemCreated,
	EventJobProblemDeleted,
}

// Event represents a domain event emitted by services. SubjectID is the
// request id or the shared job/problem id depending on Type.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID int64     `json:"subject_id"`
	ActorID   *int64    `json:"actor_specialist_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	ProblemTypeID int64  `json:"problem_type_id"`
	Description   string `json:"description"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatusID int64      `json:"old_status_id"`
	NewStatusID int64      `json:"new_status_id"`
	Stage       string     `json:"stage"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	SpecialistID int64 `json:"specialist_id"`
}

// JobProblemPayload payload for pair creation and deletion.
type JobProblemPayload struct {
	JobTitle    string `json:"job_title,omitempty"`
	ProblemType string `json:"problem_type,omitempty"`
}

type actorKey struct{}

// WithActor records the authenticated specialist on ctx.
func WithActor(ctx context.Context, specialistID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, specialistID)
}

// ActorFromContext returns the specialist recorded by WithActor.
func ActorFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}
