package handler

import (
	"bytes"
	"context"

	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"
	"github.com/deppfellow/acme-hr-directory/internal/service"

	"github.com/labstack/echo/v4"
)

// EmployeeManager is the employee behaviour the HTTP layer needs.
type EmployeeManager interface {
	ListEmployees(ctx context.Context) ([]model.EmployeeListing, error)
	CreateEmployee(ctx context.Context, payload *model.CreateEmployeePayload) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, payload *model.UpdateEmployeePayload) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, payload *model.DeleteEmployeePayload) error
}

// DirectoryExporter renders the directory workbook.
type DirectoryExporter interface {
	ExportDirectory(ctx context.Context) (*bytes.Buffer, error)
}

const (
	ExportFilename    = "employees.xlsx"
	ExportContentType = service.XLSXContentType
)

type EmployeeHandler struct {
	Handler
	employees EmployeeManager
	exporter  DirectoryExporter
}

func NewEmployeeHandler(s *server.Server, employees EmployeeManager, exporter DirectoryExporter) *EmployeeHandler {
	return &EmployeeHandler{
		Handler:   NewHandler(s),
		employees: employees,
		exporter:  exporter,
	}
}

func (h *EmployeeHandler) ListEmployees(c echo.Context, _ *model.ListEmployeesPayload) ([]model.EmployeeListing, error) {
	return h.employees.ListEmployees(c.Request().Context())
}

// CreateEmployee answers with a one-element array holding the new row.
func (h *EmployeeHandler) CreateEmployee(c echo.Context, payload *model.CreateEmployeePayload) ([]model.Employee, error) {
	employee, err := h.employees.CreateEmployee(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}
	return []model.Employee{*employee}, nil
}

// UpdateEmployee returns nil when the id matched nothing and strict
// not-found handling is off.
func (h *EmployeeHandler) UpdateEmployee(c echo.Context, payload *model.UpdateEmployeePayload) (*model.Employee, error) {
	return h.employees.UpdateEmployee(c.Request().Context(), payload)
}

func (h *EmployeeHandler) DeleteEmployee(c echo.Context, payload *model.DeleteEmployeePayload) error {
	return h.employees.DeleteEmployee(c.Request().Context(), payload)
}

func (h *EmployeeHandler) ExportEmployees(c echo.Context, _ *model.ExportEmployeesPayload) ([]byte, error) {
	buf, err := h.exporter.ExportDirectory(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
