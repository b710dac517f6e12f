package handler

import (
	"context"

	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"

	"github.com/labstack/echo/v4"
)

type DepartmentReader interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

type DepartmentHandler struct {
	Handler
	departments DepartmentReader
}

func NewDepartmentHandler(s *server.Server, departments DepartmentReader) *DepartmentHandler {
	return &DepartmentHandler{
		Handler:     NewHandler(s),
		departments: departments,
	}
}

func (h *DepartmentHandler) ListDepartments(c echo.Context, _ *model.ListDepartmentsPayload) ([]model.Department, error) {
	return h.departments.ListDepartments(c.Request().Context())
}
