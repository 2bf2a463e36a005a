package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// CatalogRepository reads and writes the simple id/name catalogs.
type CatalogRepository interface {
	List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error)
	GetName(ctx context.Context, kind domain.CatalogKind, id int64) (string, error)
	FindID(ctx context.Context, kind domain.CatalogKind, name string) (int64, error)
	Create(ctx context.Context, kind domain.CatalogKind, name string) (int64, error)
	Rename(ctx context.Context, kind domain.CatalogKind, id int64, name string) error
	Delete(ctx context.Context, kind domain.CatalogKind, id int64) error
	CountReferences(ctx context.Context, kind domain.CatalogKind, id int64) (int64, error)
	DeleteIfUnreferenced(ctx context.Context, kind domain.CatalogKind, id int64) error
}

type catalogTable struct {
	table   string
	idCol   string
	nameCol string
	// referenced lists the columns pointing at this catalog.
	referenced []columnRef
}

type columnRef struct {
	table  string
	column string
}

var catalogTables = map[domain.CatalogKind]catalogTable{
	domain.KindJobTitle: {
		table: "jobtitle", idCol: "jobtitle_id", nameCol: "jobtitle_name",
		referenced: []columnRef{{"specialist", "jobtitle_id"}},
	},
	domain.KindProblemType: {
		table: "problem", idCol: "problem_id", nameCol: "problem_name",
		referenced: []columnRef{{"request", "problem_id"}, {"resolves", "problem_id"}},
	},
	domain.KindStatus: {
		table: "status", idCol: "status_id", nameCol: "status_name",
		referenced: []columnRef{{"request", "status_id"}},
	},
	domain.KindDepartment: {
		table: "department", idCol: "department_id", nameCol: "department_name",
		referenced: []columnRef{{"worker", "department_id"}},
	},
	domain.KindOffice: {table: "office", idCol: "office_id", nameCol: "office_name"},
}

type catalogRepository struct {
	db DB
}

// NewCatalogRepository builds the repository.
func NewCatalogRepository(db DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func tableFor(kind domain.CatalogKind) (catalogTable, error) {
	t, ok := catalogTables[kind]
	if !ok {
		return catalogTable{}, apperrors.NewValidationError("unknown catalog kind", map[string]any{"kind": string(kind)})
	}
	return t, nil
}

func (r *catalogRepository) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s`, t.idCol, t.nameCol, t.table, t.idCol)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(s scanner) (domain.CatalogEntry, error) {
		var entry domain.CatalogEntry
		err := s.Scan(&entry.ID, &entry.Name)
		return entry, err
	})
}

func (r *catalogRepository) GetName(ctx context.Context, kind domain.CatalogKind, id int64) (string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return "", err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, t.nameCol, t.table, t.idCol)
	var name string
	if err := r.db.QueryRow(ctx, query, id).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound(kind.Label(), map[string]any{"id": id})
		}
		return "", err
	}
	return name, nil
}

func (r *catalogRepository) FindID(ctx context.Context, kind domain.CatalogKind, name string) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s LIMIT 1`, t.idCol, t.table, t.nameCol, t.idCol)
	var id int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFound(kind.Label(), map[string]any{"name": name})
		}
		return 0, err
	}
	return id, nil
}

// Create inserts an entry into a catalog with a generated id. Paired kinds and
// offices carry explicit ids and are rejected here.
func (r *catalogRepository) Create(ctx context.Context, kind domain.CatalogKind, name string) (int64, error) {
	if kind != domain.KindStatus && kind != domain.KindDepartment {
		return 0, apperrors.NewValidationError("catalog does not generate ids", map[string]any{"kind": string(kind)})
	}
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`, t.table, t.nameCol, t.idCol)
	var id int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *catalogRepository) Rename(ctx context.Context, kind domain.CatalogKind, id int64, name string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, t.table, t.nameCol, t.idCol)
	cmd, err := r.db.Exec(ctx, query, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound(kind.Label(), map[string]any{"id": id})
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, kind domain.CatalogKind, id int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.table, t.idCol)
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound(kind.Label(), map[string]any{"id": id})
	}
	return nil
}

// CountReferences returns how many rows in other tables point at the entry.
func (r *catalogRepository) CountReferences(ctx context.Context, kind domain.CatalogKind, id int64) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	return countReferences(ctx, r.db, t, id)
}

// DeleteIfUnreferenced removes the entry unless another row points at it.
// The entry is locked first, so a concurrent insert referencing it waits for
// the delete and then fails its foreign key check.
func (r *catalogRepository) DeleteIfUnreferenced(ctx context.Context, kind domain.CatalogKind, id int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		lock := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, t.idCol, t.table, t.idCol)
		var locked int64
		if err := tx.QueryRow(ctx, lock, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound(kind.Label(), map[string]any{"id": id})
			}
			return err
		}

		refs, err := countReferences(ctx, tx, t, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperrors.NewConflict(kind.Label()+" is still referenced", map[string]any{"id": id, "references": refs})
		}

		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.table, t.idCol)
		if _, err := tx.Exec(ctx, query, id); err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.NewConflict(kind.Label()+" is still referenced", map[string]any{"id": id})
			}
			return err
		}
		return nil
	})
}

func countReferences(ctx context.Context, q querier, t catalogTable, id int64) (int64, error) {
	var total int64
	for _, ref := range t.referenced {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, ref.table, ref.column)
		var count int64
		if err := q.QueryRow(ctx, query, id).Scan(&count); err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
