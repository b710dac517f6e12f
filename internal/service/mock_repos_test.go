package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/acme-hr-directory/internal/config"
	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"
	"github.com/deppfellow/acme-hr-directory/internal/sqlerr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

func newTestServer(strictNotFound bool) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			API: config.APIConfig{StrictNotFound: &strictNotFound},
		},
		Logger: &logger,
	}
}

type mockDepartmentRepo struct {
	departments []model.Department
	err         error
}

func (m *mockDepartmentRepo) ListDepartments(_ context.Context) ([]model.Department, error) {
	return m.departments, m.err
}

// mockEmployeeRepo keeps employees in memory and joins them against its
// departments the way the SQL listing does.
type mockEmployeeRepo struct {
	departments map[int]string
	employees   map[uuid.UUID]*model.Employee
	order       []uuid.UUID
	err         error
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		departments: map[int]string{1: "Human Resources", 2: "IT Support"},
		employees:   make(map[uuid.UUID]*model.Employee),
	}
}

func (m *mockEmployeeRepo) ListEmployees(_ context.Context) ([]model.EmployeeListing, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.EmployeeListing
	for _, id := range m.order {
		e, ok := m.employees[id]
		if !ok {
			continue
		}
		name, ok := m.departments[e.DepartmentID]
		if !ok {
			continue
		}
		result = append(result, model.EmployeeListing{
			ID:             e.ID,
			Name:           e.Name,
			Salary:         e.Salary,
			DepartmentID:   e.DepartmentID,
			DepartmentName: name,
		})
	}
	return result, nil
}

func (m *mockEmployeeRepo) CreateEmployee(_ context.Context, name, salary string, departmentID int) (*model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.departments[departmentID]; !ok {
		return nil, fmt.Errorf("creating employee: foreign key violation on department %d", departmentID)
	}
	now := time.Now()
	e := &model.Employee{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         name,
		Salary:       salary,
		DepartmentID: departmentID,
	}
	m.employees[e.ID] = e
	m.order = append(m.order, e.ID)
	return e, nil
}

func (m *mockEmployeeRepo) UpdateEmployee(_ context.Context, id uuid.UUID, name, salary string, departmentID int) (*model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("updating employee %s: %w", id, sqlerr.WithTable("employees", pgx.ErrNoRows))
	}
	updated := *e
	updated.Name = name
	updated.Salary = salary
	updated.DepartmentID = departmentID
	updated.UpdatedAt = e.UpdatedAt.Add(time.Millisecond)
	m.employees[id] = &updated
	return &updated, nil
}

func (m *mockEmployeeRepo) DeleteEmployee(_ context.Context, id uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.employees[id]; !ok {
		return 0, nil
	}
	delete(m.employees, id)
	return 1, nil
}
