package handler

import (
	"github.com/deppfellow/acme-hr-directory/internal/server"
	"github.com/deppfellow/acme-hr-directory/internal/service"
)

// Handlers groups every HTTP handler so the router takes one value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Department *DepartmentHandler
	Employee   *EmployeeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	var db Pinger
	if s.DB != nil {
		db = s.DB
	}

	return &Handlers{
		Health:     NewHealthHandler(s, db),
		OpenAPI:    NewOpenAPIHandler(s),
		Department: NewDepartmentHandler(s, services.Department),
		Employee:   NewEmployeeHandler(s, services.Employee, services.Export),
	}
}
