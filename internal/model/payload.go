package model

import (
	"github.com/deppfellow/acme-hr-directory/internal/validation"
)

var validate = validation.New()

// ListDepartmentsPayload carries no input.
type ListDepartmentsPayload struct{}

func (p *ListDepartmentsPayload) Validate() error { return nil }

// ListEmployeesPayload carries no input.
type ListEmployeesPayload struct{}

func (p *ListEmployeesPayload) Validate() error { return nil }

// ExportEmployeesPayload carries no input.
type ExportEmployeesPayload struct{}

func (p *ExportEmployeesPayload) Validate() error { return nil }

// CreateEmployeePayload is the body of POST /api/employees.
type CreateEmployeePayload struct {
	Name         string `json:"name" validate:"required,notblank,max=100"`
	Salary       string `json:"salary" validate:"required,notblank,max=100"`
	DepartmentID int    `json:"department_id" validate:"required,min=1,max=2147483647"`
}

func (p *CreateEmployeePayload) Validate() error {
	return validate.Struct(p)
}

// UpdateEmployeePayload is PUT /api/employees/:id. Every mutable field is
// replaced.
type UpdateEmployeePayload struct {
	ID           string `param:"id" json:"-" validate:"required,uuid"`
	Name         string `json:"name" validate:"required,notblank,max=100"`
	Salary       string `json:"salary" validate:"required,notblank,max=100"`
	DepartmentID int    `json:"department_id" validate:"required,min=1,max=2147483647"`
}

func (p *UpdateEmployeePayload) Validate() error {
	return validate.Struct(p)
}

// DeleteEmployeePayload is DELETE /api/employees/:id.
type DeleteEmployeePayload struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (p *DeleteEmployeePayload) Validate() error {
	return validate.Struct(p)
}
