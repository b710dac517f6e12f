// Package service contains the directory's business rules.
//
// It sits between the handler and repository layers: handlers pass it
// validated payloads, it calls the repositories and decides what a missing
// row means for the caller.
package service

import (
	"github.com/deppfellow/acme-hr-directory/internal/repository"
	"github.com/deppfellow/acme-hr-directory/internal/server"
)

type Services struct {
	Department *DepartmentService
	Employee   *EmployeeService
	Export     *ExportService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Department: NewDepartmentService(s, repos.Department),
		Employee:   NewEmployeeService(s, repos.Employee),
		Export:     NewExportService(s, repos.Department, repos.Employee),
	}, nil
}
