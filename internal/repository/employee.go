package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/sqlerr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewEmployeeRepository(db DBTX, timeout time.Duration) *EmployeeRepository {
	return &EmployeeRepository{db: db, timeout: timeout}
}

const employeeColumns = `id, created_at, updated_at, name, salary, department_id`

const (
	listEmployeesSQL = `
SELECT e.id, e.name, e.salary, e.department_id, COALESCE(d.name, '') AS department_name
FROM employees e
INNER JOIN departments d ON e.department_id = d.id
ORDER BY e.created_at, e.id`

	createEmployeeSQL = `
INSERT INTO employees (name, salary, department_id)
VALUES ($1, $2, $3)
RETURNING ` + employeeColumns

	updateEmployeeSQL = `
UPDATE employees
SET name = $1, salary = $2, department_id = $3, updated_at = now()
WHERE id = $4
RETURNING ` + employeeColumns

	deleteEmployeeSQL = `DELETE FROM employees WHERE id = $1`
)

func scanEmployee(row pgx.Row) (model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt, &e.Name, &e.Salary, &e.DepartmentID)
	return e, err
}

// ListEmployees returns every employee joined with its department name.
// Employees without a resolvable department are not listed.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]model.EmployeeListing, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, listEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.EmployeeListing, error) {
		var e model.EmployeeListing
		err := row.Scan(&e.ID, &e.Name, &e.Salary, &e.DepartmentID, &e.DepartmentName)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning employees: %w", err)
	}

	return employees, nil
}

// CreateEmployee inserts one employee. An unknown department surfaces as a
// foreign key violation.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, name, salary string, departmentID int) (*model.Employee, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	employee, err := scanEmployee(r.db.QueryRow(ctx, createEmployeeSQL, name, salary, departmentID))
	if err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	return &employee, nil
}

// UpdateEmployee replaces the mutable fields of one employee and touches
// updated_at. A missing id returns an error wrapping pgx.ErrNoRows.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id uuid.UUID, name, salary string, departmentID int) (*model.Employee, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	employee, err := scanEmployee(r.db.QueryRow(ctx, updateEmployeeSQL, name, salary, departmentID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = sqlerr.WithTable("employees", err)
		}
		return nil, fmt.Errorf("updating employee %s: %w", id, err)
	}

	return &employee, nil
}

// DeleteEmployee removes at most one employee and reports how many rows
// went away.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id uuid.UUID) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, deleteEmployeeSQL, id)
	if err != nil {
		return 0, fmt.Errorf("deleting employee %s: %w", id, err)
	}

	return tag.RowsAffected(), nil
}
