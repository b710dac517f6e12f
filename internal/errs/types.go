package errs

import "strings"

// FieldError describes a single invalid input field.
//
//	{ "field": "department_id", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the one error shape the API returns to clients.
//
// Handlers, services and repositories may return it directly; anything else
// is classified by the global error handler before it reaches the client.
//   - Code: machine-friendly identifier (e.g. "DEPARTMENT_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code written on the response.
//   - Override: whether a client may show Message as-is.
//   - Errors: per-field validation failures.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It deliberately ignores
// Code and Status so errors.Is(err, &HTTPError{}) answers "is this already
// client-shaped?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
