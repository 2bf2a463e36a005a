package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// OfficeRepository manages offices keyed by their room number.
type OfficeRepository interface {
	Create(ctx context.Context, office *domain.Office) error
	Get(ctx context.Context, number int64) (*domain.Office, error)
	List(ctx context.Context) ([]domain.Office, error)
	Update(ctx context.Context, number int64, office *domain.Office) error
	Delete(ctx context.Context, number int64) error
}

type officeRepository struct {
	db DB
}

// NewOfficeRepository builds the repository.
func NewOfficeRepository(db DB) OfficeRepository {
	return &officeRepository{db: db}
}

func scanOffice(s scanner) (domain.Office, error) {
	var office domain.Office
	err := s.Scan(&office.Number, &office.Name, &office.Housing, &office.Floor)
	return office, err
}

func (r *officeRepository) Create(ctx context.Context, office *domain.Office) error {
	const query = `
        INSERT INTO office (office_id, office_name, office_housing, office_floor)
        VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, office.Number, office.Name, office.Housing, office.Floor)
	return err
}

func (r *officeRepository) Get(ctx context.Context, number int64) (*domain.Office, error) {
	const query = `
        SELECT office_id, office_name, office_housing, office_floor
        FROM office WHERE office_id = $1`
	office, err := scanOffice(r.db.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("office", map[string]any{"number": number})
		}
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) List(ctx context.Context) ([]domain.Office, error) {
	const query = `
        SELECT office_id, office_name, office_housing, office_floor
        FROM office ORDER BY office_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanOffice)
}

// Update rewrites the office stored under number; office.Number may differ to renumber it.
func (r *officeRepository) Update(ctx context.Context, number int64, office *domain.Office) error {
	const query = `
        UPDATE office SET office_id = $1, office_name = $2, office_housing = $3, office_floor = $4
        WHERE office_id = $5`
	cmd, err := r.db.Exec(ctx, query, office.Number, office.Name, office.Housing, office.Floor, number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("office", map[string]any{"number": number})
	}
	return nil
}

func (r *officeRepository) Delete(ctx context.Context, number int64) error {
	const query = `DELETE FROM office WHERE office_id = $1`
	cmd, err := r.db.Exec(ctx, query, number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("office", map[string]any{"number": number})
	}
	return nil
}
