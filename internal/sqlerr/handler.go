package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/acme-hr-directory/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const tablePrefix = "table:"

var uniqueConstraintPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of err, looking through wrapped *Error and raw
// *pgconn.PgError values. Anything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// WithTable tags err with the table it came from, so a later ErrNoRows can be
// reported as "<Entity> not found" instead of a generic message.
func WithTable(table string, err error) error {
	return fmt.Errorf("%s%s:%w", tablePrefix, table, err)
}

// singular is a naive singularization: "employees" -> "employee".
func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

// generateErrorCode builds "<DOMAIN>_<ACTION>" codes such as
// DEPARTMENT_NOT_FOUND or EMPLOYEE_REQUIRED.
func generateErrorCode(sqlErr *Error) string {
	domain := sqlErr.TableName
	if sqlErr.Code == ForeignKeyViolation {
		// The failing reference names the missing entity, not the table
		// that holds the reference.
		if column := referencedColumn(sqlErr); column != "" {
			domain = strings.TrimSuffix(column, "_id")
		}
	}
	if domain == "" {
		domain = "RECORD"
	}
	domain = strings.ToUpper(singular(domain))

	action := "ERROR"
	switch sqlErr.Code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextRepresentation, StringDataRightTruncation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", getEntityName(sqlErr.TableName, referencedColumn(sqlErr)))

	case UniqueViolation:
		entityName := getEntityName(sqlErr.TableName, "")
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidTextRepresentation:
		return "One or more values have an invalid format"

	case StringDataRightTruncation:
		return "One or more values are too long"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a "<entity>_id" column, then the table name, then
// "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}
	if tableName != "" {
		return humanizeText(singular(tableName))
	}
	return "record"
}

// humanizeText turns "department_id" into "Department Id".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// referencedColumn finds the referencing column of a foreign key violation.
// Postgres leaves ColumnName empty for these, so the default constraint
// name "<table>_<column>_fkey" is parsed instead.
func referencedColumn(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}
	name, ok := strings.CutSuffix(sqlErr.ConstraintName, "_fkey")
	if !ok {
		return ""
	}
	if sqlErr.TableName != "" {
		name = strings.TrimPrefix(name, sqlErr.TableName+"_")
	}
	return name
}

// extractColumnForUniqueViolation supports "unique_<table>_<column>" and
// "<table>_<column>_(key|ukey)" constraint names.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueConstraintPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// tableFromMessage extracts the table tagged by WithTable.
func tableFromMessage(msg string) string {
	_, rest, ok := strings.Cut(msg, tablePrefix)
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return table
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - constraint and input-format violations: 400
//   - ErrNoRows: 404, named after the table tagged with WithTable
//   - timeouts and cancelled queries: 503
//   - anything else: a generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case UniqueViolation, CheckViolation, InvalidTextRepresentation, StringDataRightTruncation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case QueryCanceled:
			return errs.NewServiceUnavailableError("The database did not respond in time")

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		if table := tableFromMessage(err.Error()); table != "" {
			code := strings.ToUpper(singular(table)) + "_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table, "")), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)

	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewServiceUnavailableError("The database did not respond in time")
	}

	return errs.NewInternalServerError()
}
