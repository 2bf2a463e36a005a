package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// WorkerRepository manages the worker directory.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	Get(ctx context.Context, id int64) (*domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
	Update(ctx context.Context, worker *domain.Worker) error
	Delete(ctx context.Context, id int64) error
}

// The department join is a LEFT JOIN: a worker whose department was removed
// is still listed, with a null department name.
const workerSelect = `
        SELECT w.worker_id, w.worker_name, w.worker_number, w.department_id, d.department_name
        FROM worker w
        LEFT JOIN department d ON d.department_id = w.department_id`

type workerRepository struct {
	db DB
}

// NewWorkerRepository builds the repository.
func NewWorkerRepository(db DB) WorkerRepository {
	return &workerRepository{db: db}
}

func scanWorker(s scanner) (domain.Worker, error) {
	var w domain.Worker
	err := s.Scan(&w.ID, &w.Name, &w.Number, &w.DepartmentID, &w.DepartmentName)
	return w, err
}

func unknownDepartment(err error, departmentID *int64) error {
	if isForeignKeyViolation(err) && departmentID != nil {
		return apperrors.NewNotFound("department", map[string]any{"id": *departmentID})
	}
	return err
}

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO worker (worker_name, worker_number, department_id)
        VALUES ($1, $2, $3)
        RETURNING worker_id`
	if err := r.db.QueryRow(ctx, query, worker.Name, worker.Number, worker.DepartmentID).Scan(&worker.ID); err != nil {
		return unknownDepartment(err, worker.DepartmentID)
	}
	return nil
}

func (r *workerRepository) Get(ctx context.Context, id int64) (*domain.Worker, error) {
	const query = workerSelect + ` WHERE w.worker_id = $1`
	w, err := scanWorker(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"id": id})
		}
		return nil, err
	}
	return &w, nil
}

func (r *workerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	const query = workerSelect + ` ORDER BY w.worker_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanWorker)
}

func (r *workerRepository) Update(ctx context.Context, worker *domain.Worker) error {
	const query = `
        UPDATE worker SET worker_name = $1, worker_number = $2, department_id = $3
        WHERE worker_id = $4`
	cmd, err := r.db.Exec(ctx, query, worker.Name, worker.Number, worker.DepartmentID, worker.ID)
	if err != nil {
		return unknownDepartment(err, worker.DepartmentID)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("worker", map[string]any{"id": worker.ID})
	}
	return nil
}

func (r *workerRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM worker WHERE worker_id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("worker", map[string]any{"id": id})
	}
	return nil
}
