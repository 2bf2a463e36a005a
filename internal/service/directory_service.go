package service

import (
	"context"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// DirectoryService manages offices and workers.
type DirectoryService struct {
	offices repository.OfficeRepository
	workers repository.WorkerRepository
}

// DirectoryDependencies bundles repositories for the directory service.
type DirectoryDependencies struct {
	OfficeRepo repository.OfficeRepository
	WorkerRepo repository.WorkerRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{offices: deps.OfficeRepo, workers: deps.WorkerRepo}
}

func cleanOffice(office domain.Office) (*domain.Office, error) {
	if err := requireID("number", office.Number); err != nil {
		return nil, err
	}
	name, err := requireName("name", office.Name)
	if err != nil {
		return nil, err
	}
	office.Name = name
	office.Housing = strings.TrimSpace(office.Housing)
	return &office, nil
}

// CreateOffice stores a new office under its number.
func (s *DirectoryService) CreateOffice(ctx context.Context, office domain.Office) (*domain.Office, error) {
	cleaned, err := cleanOffice(office)
	if err != nil {
		return nil, err
	}
	if err := s.offices.Create(ctx, cleaned); err != nil {
		return nil, apperrors.MapError(err)
	}
	return cleaned, nil
}

// GetOffice returns one office.
func (s *DirectoryService) GetOffice(ctx context.Context, number int64) (*domain.Office, error) {
	office, err := s.offices.Get(ctx, number)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return office, nil
}

// ListOffices returns every office ordered by number.
func (s *DirectoryService) ListOffices(ctx context.Context) ([]domain.Office, error) {
	offices, err := s.offices.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return offices, nil
}

// UpdateOffice rewrites the office stored under number, possibly renumbering it.
func (s *DirectoryService) UpdateOffice(ctx context.Context, number int64, office domain.Office) (*domain.Office, error) {
	cleaned, err := cleanOffice(office)
	if err != nil {
		return nil, err
	}
	if err := s.offices.Update(ctx, number, cleaned); err != nil {
		return nil, apperrors.MapError(err)
	}
	return cleaned, nil
}

// DeleteOffice removes an office.
func (s *DirectoryService) DeleteOffice(ctx context.Context, number int64) error {
	if err := s.offices.Delete(ctx, number); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func cleanWorker(worker domain.Worker) (*domain.Worker, error) {
	name, err := requireName("name", worker.Name)
	if err != nil {
		return nil, err
	}
	worker.Name = name
	worker.Number = strings.TrimSpace(worker.Number)
	worker.DepartmentName = nil
	if worker.DepartmentID != nil {
		if err := requireID("department_id", *worker.DepartmentID); err != nil {
			return nil, err
		}
	}
	return &worker, nil
}

// CreateWorker adds a worker to the directory.
func (s *DirectoryService) CreateWorker(ctx context.Context, worker domain.Worker) (*domain.Worker, error) {
	cleaned, err := cleanWorker(worker)
	if err != nil {
		return nil, err
	}
	if err := s.workers.Create(ctx, cleaned); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetWorker(ctx, cleaned.ID)
}

// GetWorker returns one worker with their department name.
func (s *DirectoryService) GetWorker(ctx context.Context, id int64) (*domain.Worker, error) {
	worker, err := s.workers.Get(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return worker, nil
}

// ListWorkers returns all workers. A worker whose department is gone has a nil department name.
func (s *DirectoryService) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return workers, nil
}

// UpdateWorker rewrites a worker.
func (s *DirectoryService) UpdateWorker(ctx context.Context, id int64, worker domain.Worker) (*domain.Worker, error) {
	worker.ID = id
	cleaned, err := cleanWorker(worker)
	if err != nil {
		return nil, err
	}
	if err := s.workers.Update(ctx, cleaned); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetWorker(ctx, id)
}

// DeleteWorker removes a worker.
func (s *DirectoryService) DeleteWorker(ctx context.Context, id int64) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
