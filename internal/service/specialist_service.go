package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const minPasswordLength = 6

// SpecialistService manages specialists and their problem types.
type SpecialistService struct {
	specialists repository.SpecialistRepository
	bcryptCost  int
}

// SpecialistDependencies bundles repositories for the specialist service.
type SpecialistDependencies struct {
	SpecialistRepo repository.SpecialistRepository
}

// SpecialistCreateInput describes specialist registration.
type SpecialistCreateInput struct {
	JobTitleID int64
	Name       string
	Number     string
	Mail       string
	Login      string
	Password   string
}

// NewSpecialistService constructs the service.
func NewSpecialistService(cfg config.AuthConfig, deps SpecialistDependencies) *SpecialistService {
	return &SpecialistService{specialists: deps.SpecialistRepo, bcryptCost: cfg.BcryptCost}
}

// Create registers a specialist and makes it a resolver of the problem type
// paired with its job title.
func (s *SpecialistService) Create(ctx context.Context, input SpecialistCreateInput) (*domain.Specialist, error) {
	if err := requireID("job_title_id", input.JobTitleID); err != nil {
		return nil, err
	}
	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	login, err := requireName("login", input.Login)
	if err != nil {
		return nil, err
	}
	address := strings.TrimSpace(input.Mail)
	if address != "" {
		if _, err := mail.ParseAddress(address); err != nil {
			return nil, apperrors.NewValidationError("mail is not a valid address", map[string]any{"field": "mail"})
		}
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password is too short", map[string]any{"field": "password", "min": minPasswordLength})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	specialist := &domain.Specialist{
		JobTitleID:   input.JobTitleID,
		Name:         name,
		Number:       strings.TrimSpace(input.Number),
		Mail:         address,
		Login:        login,
		PasswordHash: hash,
	}
	if err := s.specialists.Create(ctx, specialist); err != nil {
		return nil, apperrors.MapError(err)
	}
	return specialist, nil
}

// Get returns one specialist.
func (s *SpecialistService) Get(ctx context.Context, id int64) (*domain.Specialist, error) {
	specialist, err := s.specialists.Get(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return specialist, nil
}

// List returns all specialists.
func (s *SpecialistService) List(ctx context.Context) ([]domain.Specialist, error) {
	specialists, err := s.specialists.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return specialists, nil
}

// Delete removes a specialist; their requests become unassigned.
func (s *SpecialistService) Delete(ctx context.Context, id int64) error {
	if err := s.specialists.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// JobTitleName returns the specialist's job title.
func (s *SpecialistService) JobTitleName(ctx context.Context, id int64) (string, error) {
	name, err := s.specialists.JobTitleName(ctx, id)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	return name, nil
}

// ListResolvers returns the specialists able to resolve a problem type.
func (s *SpecialistService) ListResolvers(ctx context.Context, problemTypeID int64) ([]domain.Specialist, error) {
	specialists, err := s.specialists.ListResolvers(ctx, problemTypeID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return specialists, nil
}
