package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// SpecialistRepository manages specialists and the resolves relation.
type SpecialistRepository interface {
	Create(ctx context.Context, specialist *domain.Specialist) error
	Get(ctx context.Context, id int64) (*domain.Specialist, error)
	List(ctx context.Context) ([]domain.Specialist, error)
	Delete(ctx context.Context, id int64) error
	JobTitleName(ctx context.Context, specialistID int64) (string, error)
	ListResolvers(ctx context.Context, problemTypeID int64) ([]domain.Specialist, error)
}

const specialistColumns = `s.specialist_id, s.jobtitle_id, s.specialist_name, s.specialist_number,
            s.specialist_mail, s.specialist_login, s.specialist_password`

type specialistRepository struct {
	db DB
}

// NewSpecialistRepository builds the repository.
func NewSpecialistRepository(db DB) SpecialistRepository {
	return &specialistRepository{db: db}
}

func scanSpecialist(s scanner) (domain.Specialist, error) {
	var sp domain.Specialist
	err := s.Scan(&sp.ID, &sp.JobTitleID, &sp.Name, &sp.Number, &sp.Mail, &sp.Login, &sp.PasswordHash)
	return sp, err
}

// Create inserts the specialist and registers it as resolver of the problem
// type sharing its job title id, all in one transaction.
func (r *specialistRepository) Create(ctx context.Context, specialist *domain.Specialist) error {
	const lockJobTitle = `SELECT jobtitle_id FROM jobtitle WHERE jobtitle_id = $1 FOR SHARE`
	const insertSpecialist = `
        INSERT INTO specialist (jobtitle_id, specialist_name, specialist_number, specialist_mail, specialist_login, specialist_password)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING specialist_id`
	const insertResolves = `INSERT INTO resolves (problem_id, specialist_id) VALUES ($1, $2)`

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var jobTitleID int64
		if err := tx.QueryRow(ctx, lockJobTitle, specialist.JobTitleID).Scan(&jobTitleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("job title", map[string]any{"id": specialist.JobTitleID})
			}
			return err
		}

		var id int64
		if err := tx.QueryRow(ctx, insertSpecialist,
			specialist.JobTitleID,
			specialist.Name,
			specialist.Number,
			specialist.Mail,
			specialist.Login,
			specialist.PasswordHash,
		).Scan(&id); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, insertResolves, specialist.JobTitleID, id); err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.NewConflict("problem type paired with job title is missing", map[string]any{"id": specialist.JobTitleID})
			}
			return err
		}
		specialist.ID = id
		return nil
	})
}

func (r *specialistRepository) Get(ctx context.Context, id int64) (*domain.Specialist, error) {
	const query = `SELECT ` + specialistColumns + ` FROM specialist s WHERE s.specialist_id = $1`
	sp, err := scanSpecialist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("specialist", map[string]any{"id": id})
		}
		return nil, err
	}
	return &sp, nil
}

func (r *specialistRepository) List(ctx context.Context) ([]domain.Specialist, error) {
	const query = `SELECT ` + specialistColumns + ` FROM specialist s ORDER BY s.specialist_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanSpecialist)
}

// Delete removes the specialist. Resolves rows cascade and assigned requests
// lose their specialist.
func (r *specialistRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM specialist WHERE specialist_id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("specialist", map[string]any{"id": id})
	}
	return nil
}

func (r *specialistRepository) JobTitleName(ctx context.Context, specialistID int64) (string, error) {
	const query = `
        SELECT j.jobtitle_name
        FROM specialist s
        JOIN jobtitle j ON j.jobtitle_id = s.jobtitle_id
        WHERE s.specialist_id = $1`
	var name string
	if err := r.db.QueryRow(ctx, query, specialistID).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("specialist", map[string]any{"id": specialistID})
		}
		return "", err
	}
	return name, nil
}

func (r *specialistRepository) ListResolvers(ctx context.Context, problemTypeID int64) ([]domain.Specialist, error) {
	const query = `
        SELECT ` + specialistColumns + `
        FROM resolves rs
        JOIN specialist s ON s.specialist_id = rs.specialist_id
        WHERE rs.problem_id = $1
        ORDER BY s.specialist_id`
	rows, err := r.db.Query(ctx, query, problemTypeID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanSpecialist)
}
