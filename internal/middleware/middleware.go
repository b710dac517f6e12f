// Package middleware holds the middleware applied to every request: request
// ids, New Relic tracing, the request-scoped logger, access logging, CORS,
// secure headers, panic recovery and the global error handler.
package middleware
