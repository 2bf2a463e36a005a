package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// JobProblemService manages job title / problem type pairs.
type JobProblemService struct {
	pairs      repository.JobProblemRepository
	dispatcher events.Dispatcher
}

// JobProblemDependencies bundles repositories for the pair service.
type JobProblemDependencies struct {
	JobProblemRepo repository.JobProblemRepository
	Dispatcher     events.Dispatcher
}

// NewJobProblemService constructs the service.
func NewJobProblemService(deps JobProblemDependencies) *JobProblemService {
	return &JobProblemService{pairs: deps.JobProblemRepo, dispatcher: deps.Dispatcher}
}

func pairNames(jobTitle, problemType string) (string, string, error) {
	jobTitle, err := requireName("job_title", jobTitle)
	if err != nil {
		return "", "", err
	}
	problemType, err = requireName("problem_type", problemType)
	if err != nil {
		return "", "", err
	}
	return jobTitle, problemType, nil
}

// Create allocates a shared id and stores both halves.
func (s *JobProblemService) Create(ctx context.Context, jobTitle, problemType string) (*domain.JobProblem, error) {
	jobTitle, problemType, err := pairNames(jobTitle, problemType)
	if err != nil {
		return nil, err
	}
	id, err := s.pairs.CreatePair(ctx, jobTitle, problemType)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventJobProblemCreated,
		SubjectID: id,
		Payload:   events.JobProblemPayload{JobTitle: jobTitle, ProblemType: problemType},
	})
	return &domain.JobProblem{
		ID:          id,
		JobTitle:    &domain.CatalogEntry{ID: id, Name: jobTitle},
		ProblemType: &domain.CatalogEntry{ID: id, Name: problemType},
	}, nil
}

// Update renames both halves of a pair.
func (s *JobProblemService) Update(ctx context.Context, id int64, jobTitle, problemType string) (*domain.JobProblem, error) {
	jobTitle, problemType, err := pairNames(jobTitle, problemType)
	if err != nil {
		return nil, err
	}
	if err := s.pairs.UpdatePair(ctx, id, jobTitle, problemType); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.JobProblem{
		ID:          id,
		JobTitle:    &domain.CatalogEntry{ID: id, Name: jobTitle},
		ProblemType: &domain.CatalogEntry{ID: id, Name: problemType},
	}, nil
}

// Delete removes both halves or neither.
func (s *JobProblemService) Delete(ctx context.Context, id int64) error {
	if err := s.pairs.DeletePair(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventJobProblemDeleted,
		SubjectID: id,
		Payload:   events.JobProblemPayload{},
	})
	return nil
}

// Get returns whichever halves exist for id.
func (s *JobProblemService) Get(ctx context.Context, id int64) (*domain.JobProblem, error) {
	pair, err := s.pairs.Get(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return pair, nil
}

// List returns complete pairs ordered by id.
func (s *JobProblemService) List(ctx context.Context) ([]domain.JobProblem, error) {
	pairs, err := s.pairs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return pairs, nil
}
