package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/acme-hr-directory/internal/config"
	"github.com/deppfellow/acme-hr-directory/internal/errs"
	"github.com/deppfellow/acme-hr-directory/internal/handler"
	"github.com/deppfellow/acme-hr-directory/internal/middleware"
	"github.com/deppfellow/acme-hr-directory/internal/repository"
	"github.com/deppfellow/acme-hr-directory/internal/server"
	"github.com/deppfellow/acme-hr-directory/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	strict := true
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			API:     config.APIConfig{StrictNotFound: &strict},
			Observability: &config.ObservabilityConfig{
				HealthChecks: config.HealthChecksConfig{
					Enabled: true,
					Timeout: time.Second,
					Checks:  []string{"database"},
				},
			},
		},
		Logger: &logger,
	}

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, pool.ExpectationsWereMet())
		pool.Close()
	})

	repos := &repository.Repositories{
		Department: repository.NewDepartmentRepository(pool, time.Second),
		Employee:   repository.NewEmployeeRepository(pool, time.Second),
	}

	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func TestNewRouter_RegistersDirectoryRoutes(t *testing.T) {
	e := newTestRouter(t)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /status",
		"GET /docs/openapi.json",
		"GET /api/departments",
		"GET /api/employees",
		"GET /api/employees/export",
		"POST /api/employees",
		"PUT /api/employees/:id",
		"DELETE /api/employees/:id",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/payroll", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Route not found", httpErr.Message)
}

func TestNewRouter_RequestID(t *testing.T) {
	e := newTestRouter(t)

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
	})
}

func TestNewRouter_StatusWithoutDatabase(t *testing.T) {
	e := newTestRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewRouter_MalformedIDNeverReachesStore(t *testing.T) {
	e := newTestRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/employees/42", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	require.NotEmpty(t, httpErr.Errors)
	assert.Equal(t, "id", httpErr.Errors[0].Field)
}

func TestNewRouter_EveryRouteIsDocumented(t *testing.T) {
	e := newTestRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	for _, r := range e.Routes() {
		if r.Method == echo.RouteNotFound || strings.Contains(r.Path, "*") {
			continue
		}
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		operations, ok := doc.Paths[path]
		if !assert.True(t, ok, "path %s not documented", path) {
			continue
		}
		assert.Contains(t, operations, strings.ToLower(r.Method), "%s %s not documented", r.Method, path)
	}
}
