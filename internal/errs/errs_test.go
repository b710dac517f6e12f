package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "", MakeUpperCaseWithUnderscores(""))
}

func TestNewBadRequestError(t *testing.T) {
	t.Run("default code", func(t *testing.T) {
		err := NewBadRequestError("bad input", false, nil, nil)
		assert.Equal(t, "BAD_REQUEST", err.Code)
		assert.Equal(t, http.StatusBadRequest, err.Status)
		assert.Equal(t, "bad input", err.Error())
	})

	t.Run("custom code and field errors", func(t *testing.T) {
		code := "DEPARTMENT_NOT_FOUND"
		fields := []FieldError{{Field: "department_id", Error: "is required"}}
		err := NewBadRequestError("The referenced Department does not exist", true, &code, fields)
		assert.Equal(t, code, err.Code)
		assert.True(t, err.Override)
		assert.Equal(t, fields, err.Errors)
	})
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Employee not found", true, nil)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
}

func TestNewInternalServerErrorHidesDetails(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}

func TestHTTPErrorIsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("updating employee: %w", NewNotFoundError("Employee not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
