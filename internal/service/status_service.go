package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ResolveStatuses loads the status catalog once and maps the canonical names
// to their ids. Callers refuse to start when it fails.
func ResolveStatuses(ctx context.Context, catalog repository.CatalogRepository) (*domain.StatusSet, error) {
	entries, err := catalog.List(ctx, domain.KindStatus)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return domain.NewStatusSet(entries)
}
