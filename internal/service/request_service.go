package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const maxDescriptionLength = 4000

// RequestService coordinates the request lifecycle.
type RequestService struct {
	requests    repository.RequestRepository
	specialists repository.SpecialistRepository
	statuses    *domain.StatusSet
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo    repository.RequestRepository
	SpecialistRepo repository.SpecialistRepository
	Statuses       *domain.StatusSet
	Dispatcher     events.Dispatcher
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// SpecialistRequests is a specialist's display name with the requests assigned to them.
type SpecialistRequests struct {
	SpecialistName string
	Requests       []domain.Request
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) (*RequestService, error) {
	if deps.Statuses == nil {
		return nil, apperrors.NewConfigurationError("request service requires resolved statuses", nil)
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &RequestService{
		requests:    deps.RequestRepo,
		specialists: deps.SpecialistRepo,
		statuses:    deps.Statuses,
		dispatcher:  deps.Dispatcher,
		now:         clock,
	}, nil
}

func cleanDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if len([]rune(description)) > maxDescriptionLength {
		return "", apperrors.NewValidationError("description is too long", map[string]any{"max": maxDescriptionLength})
	}
	return description, nil
}

// Create files a new request in the submitted stage.
func (s *RequestService) Create(ctx context.Context, problemTypeID int64, description string) (*domain.Request, error) {
	if err := requireID("problem_type_id", problemTypeID); err != nil {
		return nil, err
	}
	description, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	req, err := s.requests.Create(ctx, problemTypeID, description, s.statuses.ID(domain.StageSubmitted))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventRequestCreated,
		SubjectID: req.ID,
		Payload:   events.RequestCreatedPayload{ProblemTypeID: problemTypeID, Description: description},
	})
	return req, nil
}

// Get returns one request.
func (s *RequestService) Get(ctx context.Context, id int64) (*domain.Request, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return req, nil
}

// List returns every request ordered by id.
func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	reqs, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reqs, nil
}

// ListBySpecialist returns the specialist's name with their assigned requests.
func (s *RequestService) ListBySpecialist(ctx context.Context, specialistID int64) (*SpecialistRequests, error) {
	specialist, err := s.specialists.Get(ctx, specialistID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	reqs, err := s.requests.ListBySpecialist(ctx, specialistID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &SpecialistRequests{SpecialistName: specialist.Name, Requests: reqs}, nil
}

// UpdateStatus moves a request to statusID, keeping its timestamps coherent
// with the target stage.
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate) (*domain.Request, error) {
	if err := requireID("status_id", update.StatusID); err != nil {
		return nil, err
	}
	if update.Description != nil {
		description, err := cleanDescription(*update.Description)
		if err != nil {
			return nil, err
		}
		update.Description = &description
	}

	req, previousStatus, err := s.requests.UpdateStatus(ctx, id, update, s.statuses, s.now().UTC())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if previousStatus != req.StatusID {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:      events.EventRequestStatusChanged,
			SubjectID: req.ID,
			Payload: events.RequestStatusChangedPayload{
				OldStatusID: previousStatus,
				NewStatusID: req.StatusID,
				Stage:       s.statuses.Stage(req.StatusID).String(),
				AcceptedAt:  req.AcceptedAt,
				CompletedAt: req.CompletedAt,
			},
		})
	}
	return req, nil
}

// Delete removes a request.
func (s *RequestService) Delete(ctx context.Context, id int64) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
