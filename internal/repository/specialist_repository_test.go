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

func newSpecialist() *domain.Specialist {
	return &domain.Specialist{
		JobTitleID:   2,
		Name:         "Иванов И.И.",
		Number:       "+7 900 000-00-00",
		Mail:         "ivanov@example.com",
		Login:        "ivanov",
		PasswordHash: "$2a$04$hash",
	}
}

func TestCreateSpecialistRegistersResolver(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)
	sp := newSpecialist()

	mock.ExpectBegin()
	mock.ExpectQuery(sql("FROM jobtitle WHERE jobtitle_id = $1 FOR SHARE")).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"jobtitle_id"}).AddRow(int64(2)))
	mock.ExpectQuery(sql("INSERT INTO specialist")).
		WithArgs(int64(2), sp.Name, sp.Number, sp.Mail, sp.Login, sp.PasswordHash).
		WillReturnRows(pgxmock.NewRows([]string{"specialist_id"}).AddRow(int64(17)))
	mock.ExpectExec(sql("INSERT INTO resolves (problem_id, specialist_id)")).WithArgs(int64(2), int64(17)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), sp))
	assert.Equal(t, int64(17), sp.ID)
}

func TestCreateSpecialistUnknownJobTitle(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(sql("FOR SHARE")).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"jobtitle_id"}))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newSpecialist())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCreateSpecialistDuplicateLogin(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)
	sp := newSpecialist()

	mock.ExpectBegin()
	mock.ExpectQuery(sql("FOR SHARE")).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"jobtitle_id"}).AddRow(int64(2)))
	mock.ExpectQuery(sql("INSERT INTO specialist")).
		WithArgs(int64(2), sp.Name, sp.Number, sp.Mail, sp.Login, sp.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "specialist_specialist_login_key"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), sp)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(apperrors.MapError(err), apperrors.CodeConflict))
	assert.Zero(t, sp.ID)
}

func TestCreateSpecialistMissingProblemHalf(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)
	sp := newSpecialist()

	mock.ExpectBegin()
	mock.ExpectQuery(sql("FOR SHARE")).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"jobtitle_id"}).AddRow(int64(2)))
	mock.ExpectQuery(sql("INSERT INTO specialist")).
		WithArgs(int64(2), sp.Name, sp.Number, sp.Mail, sp.Login, sp.PasswordHash).
		WillReturnRows(pgxmock.NewRows([]string{"specialist_id"}).AddRow(int64(17)))
	mock.ExpectExec(sql("INSERT INTO resolves")).WithArgs(int64(2), int64(17)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "resolves_problem_id_fkey"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), sp)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestSpecialistJobTitleName(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)

	mock.ExpectQuery(sql("JOIN jobtitle j ON j.jobtitle_id = s.jobtitle_id")).WithArgs(int64(17)).
		WillReturnRows(pgxmock.NewRows([]string{"jobtitle_name"}).AddRow("Электрик"))

	name, err := repo.JobTitleName(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, "Электрик", name)
}

func TestListResolvers(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)

	mock.ExpectQuery(sql("FROM resolves rs")).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"specialist_id", "jobtitle_id", "specialist_name", "specialist_number", "specialist_mail", "specialist_login", "specialist_password"}).
			AddRow(int64(17), int64(2), "Иванов И.И.", "", "", "ivanov", "hash"))

	resolvers, err := repo.ListResolvers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, resolvers, 1)
	assert.Equal(t, "ivanov", resolvers[0].Login)
}

func TestDeleteSpecialistMissing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSpecialistRepository(mock)

	mock.ExpectExec(sql("DELETE FROM specialist")).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 5)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
