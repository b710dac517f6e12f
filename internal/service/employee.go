package service

import (
	"context"

	"github.com/deppfellow/acme-hr-directory/internal/errs"
	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// EmployeeStore persists employees.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]model.EmployeeListing, error)
	CreateEmployee(ctx context.Context, name, salary string, departmentID int) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, name, salary string, departmentID int) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) (int64, error)
}

type EmployeeService struct {
	server *server.Server
	repo   EmployeeStore
}

func NewEmployeeService(s *server.Server, repo EmployeeStore) *EmployeeService {
	return &EmployeeService{
		server: s,
		repo:   repo,
	}
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]model.EmployeeListing, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if employees == nil {
		employees = []model.EmployeeListing{}
	}
	return employees, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, payload *model.CreateEmployeePayload) (*model.Employee, error) {
	employee, err := s.repo.CreateEmployee(ctx, payload.Name, payload.Salary, payload.DepartmentID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	zerolog.Ctx(ctx).Info().
		Str("employee_id", employee.ID.String()).
		Int("department_id", employee.DepartmentID).
		Msg("employee created")

	return employee, nil
}

// UpdateEmployee replaces an employee's name, salary and department.
//
// With strict not-found handling a missing id is an error that maps to 404.
// Otherwise the result is nil with no error, and the handler answers with
// an empty body.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, payload *model.UpdateEmployeePayload) (*model.Employee, error) {
	id, err := parseEmployeeID(payload.ID)
	if err != nil {
		return nil, err
	}

	employee, err := s.repo.UpdateEmployee(ctx, id, payload.Name, payload.Salary, payload.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) && !s.server.Config.API.IsStrictNotFound() {
			zerolog.Ctx(ctx).Debug().Str("employee_id", id.String()).Msg("update matched no employee")
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	return employee, nil
}

// DeleteEmployee is idempotent: deleting an unknown id succeeds.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, payload *model.DeleteEmployeePayload) error {
	id, err := parseEmployeeID(payload.ID)
	if err != nil {
		return err
	}

	affected, err := s.repo.DeleteEmployee(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("employee_id", id.String()).
		Int64("deleted", affected).
		Msg("employee delete")

	return nil
}

func parseEmployeeID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "id", Error: "must be a valid UUID"},
		})
	}
	return id, nil
}
