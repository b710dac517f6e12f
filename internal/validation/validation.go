// Package validation binds request data and turns validator failures into
// field-level errors a client can act on.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// New returns a validator that reports fields by their path param or JSON
// name, so errors read "department_id" rather than "DepartmentID".
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(fieldName)
	return v
}

func fieldName(field reflect.StructField) string {
	if name := field.Tag.Get("param"); name != "" {
		return name
	}
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
