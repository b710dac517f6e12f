package middleware

import (
	"github.com/deppfellow/acme-hr-directory/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// TracingMiddleware wires New Relic transactions into echo. nrApp is nil
// when no license key is configured.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware builds the tracing middleware. A nil nrApp is valid.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request. It must run before
// EnhanceTracing and EnhanceContext, which read the transaction from the
// request context.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds request attributes to the active transaction.
//
// Behavior:
//   - No transaction in the request context: pass through
//   - Add client ip, user agent and request id
//   - Add employee.id on routes with an :id parameter
//   - Record the final status code, classified from the error when the
//     handler failed
//   - NoticeError with the pkg/errors stack, for 5xx only
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}
			if id := c.Param("id"); id != "" {
				txn.AddAttribute("employee.id", id)
			}

			err := next(c)
			if err != nil {
				status := statusFromError(err)
				if status >= 500 {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
				txn.AddAttribute("http.status_code", status)
				return err
			}

			txn.AddAttribute("http.status_code", c.Response().Status)
			return nil
		}
	}
}
