// Package sqlerr translates database driver errors.
//
// It classifies Postgres SQLSTATE codes and converts them into client-facing
// errors, e.g. a foreign key violation on employees.department_id becomes a
// 400 DEPARTMENT_NOT_FOUND instead of an opaque 500.
package sqlerr
