package repository

import (
	"github.com/deppfellow/acme-hr-directory/internal/server"
)

// Repositories holds every repository, sharing the server's pool.
type Repositories struct {
	Department *DepartmentRepository
	Employee   *EmployeeRepository
}

func NewRepositories(s *server.Server) *Repositories {
	timeout := s.Config.Database.QueryTimeout

	return &Repositories{
		Department: NewDepartmentRepository(s.DB.Pool, timeout),
		Employee:   NewEmployeeRepository(s.DB.Pool, timeout),
	}
}
