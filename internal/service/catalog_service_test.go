package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func TestResolveStatusesFailsWithoutCanonicalName(t *testing.T) {
	store := newMemStore()
	delete(store.catalogs[domain.KindStatus], 3)

	_, err := ResolveStatuses(context.Background(), memCatalog{store})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))
}

func TestResolveStatusesStorageFailure(t *testing.T) {
	store := newMemStore()
	store.failWith = errors.New("connection reset")

	_, err := ResolveStatuses(context.Background(), memCatalog{store})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
}

func TestCatalogRenameIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	dept, err := h.catalog.Create(ctx, domain.KindDepartment, "Бухгалтерия")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		entry, err := h.catalog.Rename(ctx, domain.KindDepartment, dept.ID, " Финансы ")
		require.NoError(t, err)
		assert.Equal(t, "Финансы", entry.Name)
	}
	entries, err := h.catalog.List(ctx, domain.KindDepartment)
	require.NoError(t, err)
	assert.Equal(t, []domain.CatalogEntry{{ID: dept.ID, Name: "Финансы"}}, entries)

	_, err = h.catalog.Rename(ctx, domain.KindDepartment, 999, "x")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCatalogCanonicalStatusesAreProtected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	completed := h.statuses.ID(domain.StageCompleted)

	_, err := h.catalog.Rename(ctx, domain.KindStatus, completed, domain.StatusNameCompleted)
	require.NoError(t, err, "renaming to the same name is a no-op")

	_, err = h.catalog.Rename(ctx, domain.KindStatus, completed, "Закрыта")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	err = h.catalog.Delete(ctx, domain.KindStatus, completed)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestCatalogDeleteStatusInUse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	custom, err := h.catalog.Create(ctx, domain.KindStatus, "Отложена")
	require.NoError(t, err)
	pair, err := h.pairs.Create(ctx, "Электрик", "Проводка")
	require.NoError(t, err)
	req, err := h.requests.Create(ctx, pair.ID, "")
	require.NoError(t, err)
	_, err = h.requests.UpdateStatus(ctx, req.ID, domain.StatusUpdate{StatusID: custom.ID})
	require.NoError(t, err)

	err = h.catalog.Delete(ctx, domain.KindStatus, custom.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	require.NoError(t, h.requests.Delete(ctx, req.ID))
	require.NoError(t, h.catalog.Delete(ctx, domain.KindStatus, custom.ID))
}

func TestCatalogDeleteDepartmentWithWorkers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	dept, err := h.catalog.Create(ctx, domain.KindDepartment, "Бухгалтерия")
	require.NoError(t, err)
	_, err = h.directory.CreateWorker(ctx, domain.Worker{Name: "Петров", DepartmentID: &dept.ID})
	require.NoError(t, err)

	err = h.catalog.Delete(ctx, domain.KindDepartment, dept.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestCatalogPairedKindsGoThroughPairs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pair, err := h.pairs.Create(ctx, "Электрик", "Проводка")
	require.NoError(t, err)

	err = h.catalog.Delete(ctx, domain.KindJobTitle, pair.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	_, err = h.catalog.Create(ctx, domain.KindProblemType, "Протечка")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	id, err := h.catalog.FindID(ctx, domain.KindJobTitle, "Электрик")
	require.NoError(t, err)
	assert.Equal(t, pair.ID, id)
}

func TestCatalogRejectsBlankNames(t *testing.T) {
	h := newHarness(t)
	_, err := h.catalog.Create(context.Background(), domain.KindDepartment, "   ")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, err = h.catalog.List(context.Background(), domain.CatalogKind("floor"))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}
