package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/acme-hr-directory/internal/errs"
	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/sqlerr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDepartmentService_ListDepartments_EmptyIsNotNil(t *testing.T) {
	svc := NewDepartmentService(newTestServer(true), &mockDepartmentRepo{})

	departments, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, departments)
	assert.Empty(t, departments)
}

func TestDepartmentService_ListDepartments_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewDepartmentService(newTestServer(true), &mockDepartmentRepo{err: storeErr})

	_, err := svc.ListDepartments(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestEmployeeService_CreateThenList(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(newTestServer(true), repo)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, &model.CreateEmployeePayload{
		Name:         "Ada",
		Salary:       "$100,000",
		DepartmentID: 2,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	listing, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, created.ID, listing[0].ID)
	assert.Equal(t, "IT Support", listing[0].DepartmentName)
}

func TestEmployeeService_CreateUnknownDepartmentLeavesNoRow(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(newTestServer(true), repo)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, &model.CreateEmployeePayload{Name: "Ada", Salary: "$1", DepartmentID: 42})
	require.Error(t, err)

	listing, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestEmployeeService_UpdateRefreshesUpdatedAt(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(newTestServer(true), repo)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, &model.CreateEmployeePayload{Name: "Ada", Salary: "$1", DepartmentID: 1})
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, &model.UpdateEmployeePayload{
		ID:           created.ID.String(),
		Name:         "Ada Lovelace",
		Salary:       "$2",
		DepartmentID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestEmployeeService_UpdateMissing(t *testing.T) {
	payload := &model.UpdateEmployeePayload{
		ID:           uuid.NewString(),
		Name:         "Nobody",
		Salary:       "$0",
		DepartmentID: 1,
	}

	t.Run("strict", func(t *testing.T) {
		svc := NewEmployeeService(newTestServer(true), newMockEmployeeRepo())

		_, err := svc.UpdateEmployee(context.Background(), payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, pgx.ErrNoRows)

		var httpErr *errs.HTTPError
		require.True(t, errors.As(sqlerr.HandleError(err), &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "EMPLOYEE_NOT_FOUND", httpErr.Code)
	})

	t.Run("legacy", func(t *testing.T) {
		svc := NewEmployeeService(newTestServer(false), newMockEmployeeRepo())

		employee, err := svc.UpdateEmployee(context.Background(), payload)
		require.NoError(t, err)
		assert.Nil(t, employee)
	})
}

func TestEmployeeService_DeleteIsIdempotent(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(newTestServer(true), repo)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, &model.CreateEmployeePayload{Name: "Ada", Salary: "$1", DepartmentID: 1})
	require.NoError(t, err)

	payload := &model.DeleteEmployeePayload{ID: created.ID.String()}
	require.NoError(t, svc.DeleteEmployee(ctx, payload))
	require.NoError(t, svc.DeleteEmployee(ctx, payload))

	listing, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestEmployeeService_RejectsMalformedID(t *testing.T) {
	svc := NewEmployeeService(newTestServer(true), newMockEmployeeRepo())

	err := svc.DeleteEmployee(context.Background(), &model.DeleteEmployeePayload{ID: "42"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestExportService_ExportDirectory(t *testing.T) {
	employees := newMockEmployeeRepo()
	departments := &mockDepartmentRepo{departments: []model.Department{
		{ID: 1, Name: "Human Resources"},
		{ID: 2, Name: "IT Support"},
	}}
	ctx := context.Background()

	created, err := NewEmployeeService(newTestServer(true), employees).
		CreateEmployee(ctx, &model.CreateEmployeePayload{Name: "Jina Raune", Salary: "$55,961", DepartmentID: 2})
	require.NoError(t, err)

	svc := NewExportService(newTestServer(true), departments, employees)
	buf, err := svc.ExportDirectory(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{EmployeesSheet, DepartmentsSheet}, f.GetSheetList())

	rows, err := f.GetRows(EmployeesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Name", "Salary", "Department ID", "Department"}, rows[0])
	assert.Equal(t, []string{created.ID.String(), "Jina Raune", "$55,961", "2", "IT Support"}, rows[1])

	rows, err = f.GetRows(DepartmentsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID", "Name"}, {"1", "Human Resources"}, {"2", "IT Support"}}, rows)
}

func TestExportService_StoreError(t *testing.T) {
	employees := newMockEmployeeRepo()
	employees.err = errors.New("timeout")

	svc := NewExportService(newTestServer(true), &mockDepartmentRepo{}, employees)
	_, err := svc.ExportDirectory(context.Background())
	assert.Error(t, err)
}
