// Package router builds the echo instance: global middleware, the error
// handler, system routes and the /api group.
package router

import (
	"net/http"

	"github.com/deppfellow/acme-hr-directory/internal/handler"
	"github.com/deppfellow/acme-hr-directory/internal/middleware"
	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"

	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the New Relic transaction and request id must exist
	// before the request logger is built.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerDirectoryRoutes(api, h)

	return router
}

func registerDirectoryRoutes(api *echo.Group, h *handler.Handlers) {
	api.GET("/departments", handler.Handle(
		h.Department.Handler,
		h.Department.ListDepartments,
		http.StatusOK,
		&model.ListDepartmentsPayload{},
	))

	employees := api.Group("/employees")

	employees.GET("", handler.Handle(
		h.Employee.Handler,
		h.Employee.ListEmployees,
		http.StatusOK,
		&model.ListEmployeesPayload{},
	))

	employees.GET("/export", handler.HandleFile(
		h.Employee.Handler,
		h.Employee.ExportEmployees,
		http.StatusOK,
		&model.ExportEmployeesPayload{},
		handler.ExportFilename,
		handler.ExportContentType,
	))

	employees.POST("", handler.Handle(
		h.Employee.Handler,
		h.Employee.CreateEmployee,
		http.StatusCreated,
		&model.CreateEmployeePayload{},
	))

	employees.PUT("/:id", handler.HandleOptional(
		h.Employee.Handler,
		h.Employee.UpdateEmployee,
		http.StatusOK,
		&model.UpdateEmployeePayload{},
	))

	employees.DELETE("/:id", handler.HandleNoContent(
		h.Employee.Handler,
		h.Employee.DeleteEmployee,
		http.StatusNoContent,
		&model.DeleteEmployeePayload{},
	))
}
