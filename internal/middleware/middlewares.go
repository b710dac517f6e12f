package middleware

import (
	"github.com/deppfellow/acme-hr-directory/internal/server"
)

// Middlewares groups every middleware component, built once from the
// server container.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

// NewMiddlewares builds the middleware set. Without a New Relic application
// the tracing middleware passes requests through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
