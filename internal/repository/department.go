package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/acme-hr-directory/internal/model"

	"github.com/jackc/pgx/v5"
)

type DepartmentRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewDepartmentRepository(db DBTX, timeout time.Duration) *DepartmentRepository {
	return &DepartmentRepository{db: db, timeout: timeout}
}

const listDepartmentsSQL = `SELECT id, COALESCE(name, '') FROM departments ORDER BY id`

// ListDepartments returns every department ordered by id.
func (r *DepartmentRepository) ListDepartments(ctx context.Context) ([]model.Department, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, listDepartmentsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}

	departments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Department, error) {
		var d model.Department
		err := row.Scan(&d.ID, &d.Name)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning departments: %w", err)
	}

	return departments, nil
}
