package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func TestWorkerListToleratesDanglingDepartment(t *testing.T) {
	mock := newMockDB(t)
	repo := NewWorkerRepository(mock)
	dept := int64(3)
	deptName := "Бухгалтерия"

	mock.ExpectQuery(sql("LEFT JOIN department d ON d.department_id = w.department_id")).
		WillReturnRows(pgxmock.NewRows([]string{"worker_id", "worker_name", "worker_number", "department_id", "department_name"}).
			AddRow(int64(1), "Петров", "101", &dept, &deptName).
			AddRow(int64(2), "Сидоров", "102", (*int64)(nil), (*string)(nil)))

	workers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 2)
	require.NotNil(t, workers[0].DepartmentName)
	assert.Equal(t, "Бухгалтерия", *workers[0].DepartmentName)
	assert.Nil(t, workers[1].DepartmentID)
	assert.Nil(t, workers[1].DepartmentName)
}

func TestWorkerCreateUnknownDepartment(t *testing.T) {
	mock := newMockDB(t)
	repo := NewWorkerRepository(mock)
	dept := int64(99)
	w := &domain.Worker{Name: "Петров", Number: "101", DepartmentID: &dept}

	mock.ExpectQuery(sql("INSERT INTO worker")).WithArgs("Петров", "101", &dept).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), w)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestOfficeUpdateRenumbers(t *testing.T) {
	mock := newMockDB(t)
	repo := NewOfficeRepository(mock)
	floor := int32(2)
	office := &domain.Office{Number: 215, Name: "Переговорная", Housing: "Б", Floor: &floor}

	mock.ExpectExec(sql("UPDATE office SET office_id = $1")).
		WithArgs(int64(215), "Переговорная", "Б", &floor, int64(210)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), 210, office))
}

func TestOfficeGet(t *testing.T) {
	mock := newMockDB(t)
	repo := NewOfficeRepository(mock)

	mock.ExpectQuery(sql("FROM office WHERE office_id = $1")).WithArgs(int64(210)).
		WillReturnRows(pgxmock.NewRows([]string{"office_id", "office_name", "office_housing", "office_floor"}).
			AddRow(int64(210), "Переговорная", "Б", (*int32)(nil)))

	office, err := repo.Get(context.Background(), 210)
	require.NoError(t, err)
	assert.Equal(t, "Переговорная", office.Name)
	assert.Nil(t, office.Floor)
}

func TestOfficeDeleteMissing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewOfficeRepository(mock)

	mock.ExpectExec(sql("DELETE FROM office")).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.True(t, apperrors.IsCode(repo.Delete(context.Background(), 1), apperrors.CodeNotFound))
}
