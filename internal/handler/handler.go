// Package handler is the HTTP layer of the directory.
//
// Handlers receive bound and validated payloads through the generic Handle
// helpers, call the service layer and return results; errors are left to the
// global error handler to classify and write.
package handler
