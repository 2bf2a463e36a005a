package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// RequestRepository encapsulates request persistence.
type RequestRepository interface {
	Create(ctx context.Context, problemTypeID int64, description string, submittedStatusID int64) (*domain.Request, error)
	Get(ctx context.Context, id int64) (*domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	ListBySpecialist(ctx context.Context, specialistID int64) ([]domain.Request, error)
	ListCompleted(ctx context.Context, completedStatusID int64) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate, statuses *domain.StatusSet, now time.Time) (*domain.Request, int64, error)
	Assign(ctx context.Context, requestID, specialistID int64) (*domain.Request, error)
	Delete(ctx context.Context, id int64) error
	CountByProblemType(ctx context.Context) ([]domain.ProblemTypeCount, error)
}

const requestColumns = `request_id, problem_id, specialist_id, status_id, request_description,
            request_senddate, request_acceptdate, request_completedate`

type requestRepository struct {
	db DB
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(db DB) RequestRepository {
	return &requestRepository{db: db}
}

func scanRequest(s scanner) (domain.Request, error) {
	var req domain.Request
	err := s.Scan(
		&req.ID,
		&req.ProblemTypeID,
		&req.SpecialistID,
		&req.StatusID,
		&req.Description,
		&req.SentAt,
		&req.AcceptedAt,
		&req.CompletedAt,
	)
	return req, err
}

func (r *requestRepository) Create(ctx context.Context, problemTypeID int64, description string, submittedStatusID int64) (*domain.Request, error) {
	const query = `
        INSERT INTO request (problem_id, status_id, request_description, request_senddate)
        VALUES ($1, $2, $3, NOW())
        RETURNING ` + requestColumns
	req, err := scanRequest(r.db.QueryRow(ctx, query, problemTypeID, submittedStatusID, description))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("problem type", map[string]any{"id": problemTypeID})
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) Get(ctx context.Context, id int64) (*domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM request WHERE request_id = $1`
	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM request ORDER BY request_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanRequest)
}

func (r *requestRepository) ListBySpecialist(ctx context.Context, specialistID int64) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM request WHERE specialist_id = $1 ORDER BY request_id`
	rows, err := r.db.Query(ctx, query, specialistID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanRequest)
}

func (r *requestRepository) ListCompleted(ctx context.Context, completedStatusID int64) ([]domain.Request, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM request
        WHERE status_id = $1 AND request_completedate IS NOT NULL
        ORDER BY request_completedate`
	rows, err := r.db.Query(ctx, query, completedStatusID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanRequest)
}

// UpdateStatus locks the request row, merges the update and validates the
// result before writing it back. Nothing is written when validation fails.
// The returned status id is the one held under the lock, before the update.
func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate, statuses *domain.StatusSet, now time.Time) (*domain.Request, int64, error) {
	const lockRequest = `SELECT ` + requestColumns + ` FROM request WHERE request_id = $1 FOR UPDATE`
	const statusExists = `SELECT EXISTS (SELECT 1 FROM status WHERE status_id = $1)`
	const writeRequest = `
        UPDATE request
        SET status_id = $2, request_description = $3, request_acceptdate = $4, request_completedate = $5
        WHERE request_id = $1`

	var (
		updated        domain.Request
		previousStatus int64
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		req, err := scanRequest(tx.QueryRow(ctx, lockRequest, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("request", map[string]any{"id": id})
			}
			return err
		}
		previousStatus = req.StatusID

		var exists bool
		if err := tx.QueryRow(ctx, statusExists, update.StatusID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFound("status", map[string]any{"id": update.StatusID})
		}

		if err := req.ApplyStatusUpdate(update, statuses.Stage(update.StatusID), now); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, writeRequest, id, req.StatusID, req.Description, req.AcceptedAt, req.CompletedAt); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &updated, previousStatus, nil
}

// Assign hands a request to a specialist registered as resolver of its problem type.
func (r *requestRepository) Assign(ctx context.Context, requestID, specialistID int64) (*domain.Request, error) {
	const lockRequest = `SELECT ` + requestColumns + ` FROM request WHERE request_id = $1 FOR UPDATE`
	const specialistExists = `SELECT EXISTS (SELECT 1 FROM specialist WHERE specialist_id = $1)`
	const resolves = `SELECT EXISTS (SELECT 1 FROM resolves WHERE problem_id = $1 AND specialist_id = $2)`
	const assign = `UPDATE request SET specialist_id = $2 WHERE request_id = $1`

	var assigned domain.Request
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		req, err := scanRequest(tx.QueryRow(ctx, lockRequest, requestID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("request", map[string]any{"id": requestID})
			}
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, specialistExists, specialistID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFound("specialist", map[string]any{"id": specialistID})
		}

		var canResolve bool
		if err := tx.QueryRow(ctx, resolves, req.ProblemTypeID, specialistID).Scan(&canResolve); err != nil {
			return err
		}
		if !canResolve {
			return apperrors.NewConflict("specialist does not resolve this problem type", map[string]any{
				"request_id":      requestID,
				"specialist_id":   specialistID,
				"problem_type_id": req.ProblemTypeID,
			})
		}

		if _, err := tx.Exec(ctx, assign, requestID, specialistID); err != nil {
			return err
		}
		req.SpecialistID = &specialistID
		assigned = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assigned, nil
}

func (r *requestRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM request WHERE request_id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("request", map[string]any{"id": id})
	}
	return nil
}

// CountByProblemType counts requests per problem type name in one statement.
func (r *requestRepository) CountByProblemType(ctx context.Context) ([]domain.ProblemTypeCount, error) {
	const query = `
        SELECT p.problem_name, COUNT(r.request_id)
        FROM request r
        JOIN problem p ON p.problem_id = r.problem_id
        GROUP BY p.problem_name
        ORDER BY p.problem_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(s scanner) (domain.ProblemTypeCount, error) {
		var count domain.ProblemTypeCount
		err := s.Scan(&count.ProblemType, &count.RequestCount)
		return count, err
	})
}
