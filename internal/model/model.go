// Package model holds the directory entities and the request payloads that
// create or change them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Department is a seeded, read-only grouping of employees.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Employee is a full employees row.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name"`
	Salary       string    `json:"salary"`
	DepartmentID int       `json:"department_id"`
}

// EmployeeListing is an employee joined with the name of its department.
type EmployeeListing struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Salary         string    `json:"salary"`
	DepartmentID   int       `json:"department_id"`
	DepartmentName string    `json:"department_name"`
}
