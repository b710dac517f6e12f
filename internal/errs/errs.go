// Package errs defines the error shapes the API sends to clients.
//
// Every failure that leaves the service is an *HTTPError serialized as JSON,
// optionally carrying field-level validation errors, so clients always get a
// consistent, machine-readable body.
package errs
