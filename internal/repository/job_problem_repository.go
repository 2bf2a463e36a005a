package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const pairSequenceName = "jobproblem"

// JobProblemRepository keeps job titles and problem types in lock step: both
// halves of a pair share one id and are written in a single transaction.
type JobProblemRepository interface {
	CreatePair(ctx context.Context, jobTitle, problemType string) (int64, error)
	UpdatePair(ctx context.Context, id int64, jobTitle, problemType string) error
	DeletePair(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.JobProblem, error)
	List(ctx context.Context) ([]domain.JobProblem, error)
}

type jobProblemRepository struct {
	db DB
}

// NewJobProblemRepository builds the repository.
func NewJobProblemRepository(db DB) JobProblemRepository {
	return &jobProblemRepository{db: db}
}

// CreatePair allocates the next shared id. The sequence row is locked for the
// whole transaction so concurrent allocations serialise, and the id never
// drops below the largest id present in either table.
func (r *jobProblemRepository) CreatePair(ctx context.Context, jobTitle, problemType string) (int64, error) {
	const lockSequence = `
        SELECT last_id FROM catalog_pair_sequence WHERE name = $1 FOR UPDATE`
	const maxExisting = `
        SELECT GREATEST(
            COALESCE((SELECT MAX(jobtitle_id) FROM jobtitle), 0),
            COALESCE((SELECT MAX(problem_id) FROM problem), 0)
        )::BIGINT`
	const insertJobTitle = `
        INSERT INTO jobtitle (jobtitle_id, jobtitle_name) VALUES ($1, $2)`
	const insertProblem = `
        INSERT INTO problem (problem_id, problem_name) VALUES ($1, $2)`
	const advanceSequence = `
        UPDATE catalog_pair_sequence SET last_id = $2 WHERE name = $1`

	var id int64
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var last int64
		if err := tx.QueryRow(ctx, lockSequence, pairSequenceName).Scan(&last); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewConfigurationError("pair id sequence is not initialised", map[string]any{"sequence": pairSequenceName})
			}
			return err
		}
		var existing int64
		if err := tx.QueryRow(ctx, maxExisting).Scan(&existing); err != nil {
			return err
		}
		id = max(last, existing) + 1

		if _, err := tx.Exec(ctx, insertJobTitle, id, jobTitle); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertProblem, id, problemType); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, advanceSequence, pairSequenceName, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *jobProblemRepository) UpdatePair(ctx context.Context, id int64, jobTitle, problemType string) error {
	const updateJobTitle = `
        UPDATE jobtitle SET jobtitle_name = $1 WHERE jobtitle_id = $2`
	const updateProblem = `
        UPDATE problem SET problem_name = $1 WHERE problem_id = $2`

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		jobCmd, err := tx.Exec(ctx, updateJobTitle, jobTitle, id)
		if err != nil {
			return err
		}
		problemCmd, err := tx.Exec(ctx, updateProblem, problemType, id)
		if err != nil {
			return err
		}
		missing := missingHalves(jobCmd.RowsAffected(), problemCmd.RowsAffected())
		if len(missing) > 0 {
			return apperrors.NewNotFound("job/problem pair", map[string]any{"id": id, "missing": missing})
		}
		return nil
	})
}

// DeletePair removes both halves or neither.
func (r *jobProblemRepository) DeletePair(ctx context.Context, id int64) error {
	const deleteJobTitle = `DELETE FROM jobtitle WHERE jobtitle_id = $1`
	const deleteProblem = `DELETE FROM problem WHERE problem_id = $1`

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		jobCmd, err := tx.Exec(ctx, deleteJobTitle, id)
		if err != nil {
			return pairInUse(err, id)
		}
		problemCmd, err := tx.Exec(ctx, deleteProblem, id)
		if err != nil {
			return pairInUse(err, id)
		}
		missing := missingHalves(jobCmd.RowsAffected(), problemCmd.RowsAffected())
		switch len(missing) {
		case 0:
			return nil
		case 2:
			return apperrors.NewNotFound("job/problem pair", map[string]any{"id": id})
		default:
			return apperrors.NewConflict("job/problem pair is incomplete", map[string]any{"id": id, "missing": missing})
		}
	})
}

func (r *jobProblemRepository) Get(ctx context.Context, id int64) (*domain.JobProblem, error) {
	const jobTitleQuery = `SELECT jobtitle_name FROM jobtitle WHERE jobtitle_id = $1`
	const problemQuery = `SELECT problem_name FROM problem WHERE problem_id = $1`

	pair := &domain.JobProblem{ID: id}
	half := func(query string) (*domain.CatalogEntry, error) {
		var name string
		if err := r.db.QueryRow(ctx, query, id).Scan(&name); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &domain.CatalogEntry{ID: id, Name: name}, nil
	}

	var err error
	if pair.JobTitle, err = half(jobTitleQuery); err != nil {
		return nil, err
	}
	if pair.ProblemType, err = half(problemQuery); err != nil {
		return nil, err
	}
	if pair.JobTitle == nil && pair.ProblemType == nil {
		return nil, apperrors.NewNotFound("job/problem pair", map[string]any{"id": id})
	}
	return pair, nil
}

func (r *jobProblemRepository) List(ctx context.Context) ([]domain.JobProblem, error) {
	const query = `
        SELECT j.jobtitle_id, j.jobtitle_name, p.problem_name
        FROM jobtitle j
        JOIN problem p ON p.problem_id = j.jobtitle_id
        ORDER BY j.jobtitle_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(s scanner) (domain.JobProblem, error) {
		var (
			id                    int64
			jobTitle, problemType string
		)
		if err := s.Scan(&id, &jobTitle, &problemType); err != nil {
			return domain.JobProblem{}, err
		}
		return domain.JobProblem{
			ID:          id,
			JobTitle:    &domain.CatalogEntry{ID: id, Name: jobTitle},
			ProblemType: &domain.CatalogEntry{ID: id, Name: problemType},
		}, nil
	})
}

func missingHalves(jobRows, problemRows int64) []string {
	var missing []string
	if jobRows != 1 {
		missing = append(missing, string(domain.KindJobTitle))
	}
	if problemRows != 1 {
		missing = append(missing, string(domain.KindProblemType))
	}
	return missing
}

func pairInUse(err error, id int64) error {
	if isForeignKeyViolation(err) {
		return apperrors.NewConflict("job/problem pair is still referenced", map[string]any{"id": id})
	}
	return err
}
