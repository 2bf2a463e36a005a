package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AssignmentService hands requests to specialists.
type AssignmentService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
	}
}

// AssignRequest assigns a request to a specialist registered as resolver of
// its problem type.
func (s *AssignmentService) AssignRequest(ctx context.Context, requestID, specialistID int64) (*domain.Request, error) {
	if err := requireID("specialist_id", specialistID); err != nil {
		return nil, err
	}
	req, err := s.requests.Assign(ctx, requestID, specialistID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventRequestAssigned,
		SubjectID: req.ID,
		Payload:   events.RequestAssignedPayload{SpecialistID: specialistID},
	})
	return req, nil
}
