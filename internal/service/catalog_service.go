package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// CatalogService guards the simple catalogs: job titles, problem types,
// statuses, departments and offices.
type CatalogService struct {
	catalog  repository.CatalogRepository
	statuses *domain.StatusSet
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	CatalogRepo repository.CatalogRepository
	Statuses    *domain.StatusSet
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{catalog: deps.CatalogRepo, statuses: deps.Statuses}
}

func checkKind(kind domain.CatalogKind) error {
	if !kind.Valid() {
		return apperrors.NewValidationError("unknown catalog kind", map[string]any{"kind": string(kind)})
	}
	return nil
}

// List returns every entry of kind ordered by id.
func (s *CatalogService) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	entries, err := s.catalog.List(ctx, kind)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// Get returns one entry.
func (s *CatalogService) Get(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	name, err := s.catalog.GetName(ctx, kind, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.CatalogEntry{ID: id, Name: name}, nil
}

// FindID looks an entry up by exact name.
func (s *CatalogService) FindID(ctx context.Context, kind domain.CatalogKind, name string) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	name, err := requireName("name", name)
	if err != nil {
		return 0, err
	}
	id, err := s.catalog.FindID(ctx, kind, name)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return id, nil
}

// Create adds a status or department. Job titles and problem types are only
// created as pairs, offices carry their own number.
func (s *CatalogService) Create(ctx context.Context, kind domain.CatalogKind, name string) (*domain.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if kind != domain.KindStatus && kind != domain.KindDepartment {
		return nil, apperrors.NewValidationError("entries of this kind cannot be created directly", map[string]any{"kind": string(kind)})
	}
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}
	id, err := s.catalog.Create(ctx, kind, name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.CatalogEntry{ID: id, Name: name}, nil
}

// Rename sets the entry name. Renaming to the current name succeeds.
// Canonical statuses keep their names since they are resolved by name at startup.
func (s *CatalogService) Rename(ctx context.Context, kind domain.CatalogKind, id int64, name string) (*domain.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindStatus && s.statuses != nil {
		if stage := s.statuses.Stage(id); stage != domain.StageOther && stage.CanonicalName() != name {
			return nil, apperrors.NewConflict("canonical status cannot be renamed", map[string]any{"id": id, "stage": stage.String()})
		}
	}
	if err := s.catalog.Rename(ctx, kind, id, name); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.CatalogEntry{ID: id, Name: name}, nil
}

// Delete removes an entry after checking nothing depends on it.
func (s *CatalogService) Delete(ctx context.Context, kind domain.CatalogKind, id int64) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	switch kind {
	case domain.KindJobTitle, domain.KindProblemType:
		return apperrors.NewValidationError("job titles and problem types are deleted as pairs", map[string]any{"kind": string(kind), "id": id})
	case domain.KindStatus:
		if s.statuses != nil && s.statuses.IsCanonical(id) {
			return apperrors.NewConflict("canonical status cannot be deleted", map[string]any{"id": id})
		}
	}

	if kind == domain.KindStatus || kind == domain.KindDepartment {
		if err := s.catalog.DeleteIfUnreferenced(ctx, kind, id); err != nil {
			return apperrors.MapError(err)
		}
		return nil
	}
	if err := s.catalog.Delete(ctx, kind, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
