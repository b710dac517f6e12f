package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/acme-hr-directory/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// SeedEmployee is a fixed sample row. Department is resolved by name.
type SeedEmployee struct {
	Name       string
	Salary     string
	Department string
}

var SeedDepartments = []string{
	"Human Resources",
	"Area Management",
	"IT Support",
	"Software Developer",
}

var SeedEmployees = []SeedEmployee{
	{Name: "Steve De La Rosa", Salary: "$85,000", Department: "Software Developer"},
	{Name: "Jina Raune", Salary: "$55,961", Department: "IT Support"},
	{Name: "Yilda Oprimis", Salary: "$79,005", Department: "Area Management"},
	{Name: "Jorge Maine", Salary: "$71,424", Department: "Human Resources"},
}

const dropDirectorySQL = `DROP TABLE IF EXISTS employees, departments, ` + versionTable + ` CASCADE`

// TxBeginner is satisfied by *pgx.Conn, *pgxpool.Pool and pgxmock.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Reset drops the directory tables, migrates them again and reseeds them.
// All data is lost.
//
// Behavior:
//   - Drop employees, departments and schema_version with CASCADE
//   - Rerun every migration from version 0
//   - Seed the now empty tables
//
// The steps share one connection but not one transaction. A failure after
// the drop leaves a partial schema, and running Reset again repairs it.
func Reset(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting for reset: %w", err)
	}
	defer conn.Close(ctx)

	logger.Warn().Msg("dropping directory tables")
	if _, err := conn.Exec(ctx, dropDirectorySQL); err != nil {
		return fmt.Errorf("dropping directory tables: %w", err)
	}

	if err := migrate(ctx, conn, logger); err != nil {
		return err
	}

	return Seed(ctx, conn, logger)
}

// SeedDatabase connects with cfg and runs Seed.
func SeedDatabase(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting for seed: %w", err)
	}
	defer conn.Close(ctx)

	return Seed(ctx, conn, logger)
}

// Seed inserts the sample departments and employees in one transaction.
// It does nothing when departments already exist, so running it twice does
// not duplicate rows.
//
// Inputs:
//   - db: anything that can begin a transaction (connection, pool or mock)
//   - logger: receives one line for the skip or the insert
//
// Behavior:
//   - Count departments inside the transaction and roll back if any exist
//   - Insert SeedDepartments in a single statement
//   - Insert SeedEmployees, resolving each department id by name
//   - Roll back on any error, commit otherwise
func Seed(ctx context.Context, db TxBeginner, logger *zerolog.Logger) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var existing int64
	if err = tx.QueryRow(ctx, `SELECT count(*) FROM departments`).Scan(&existing); err != nil {
		return fmt.Errorf("counting departments: %w", err)
	}
	if existing > 0 {
		logger.Info().Int64("departments", existing).Msg("directory already seeded, skipping")
		return tx.Rollback(ctx)
	}

	query, args := insertDepartmentsQuery(SeedDepartments)
	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("seeding departments: %w", err)
	}

	query, args = insertEmployeesQuery(SeedEmployees)
	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("seeding employees: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	logger.Info().
		Int("departments", len(SeedDepartments)).
		Int("employees", len(SeedEmployees)).
		Msg("seeded directory")
	return nil
}

// insertDepartmentsQuery builds one multi-row INSERT with a bound
// parameter per name.
func insertDepartmentsQuery(names []string) (string, []any) {
	values := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for i, name := range names {
		values = append(values, fmt.Sprintf("($%d)", i+1))
		args = append(args, name)
	}
	return `INSERT INTO departments (name) VALUES ` + strings.Join(values, ", "), args
}

// insertEmployeesQuery builds one multi-row INSERT. The department id is a
// subquery on the department name, so the rows do not depend on the serial
// ids the departments received.
func insertEmployeesQuery(employees []SeedEmployee) (string, []any) {
	values := make([]string, 0, len(employees))
	args := make([]any, 0, len(employees)*3)
	for i, e := range employees {
		n := i * 3
		values = append(values, fmt.Sprintf(
			"($%d, $%d, (SELECT id FROM departments WHERE name = $%d))", n+1, n+2, n+3))
		args = append(args, e.Name, e.Salary, e.Department)
	}
	return `INSERT INTO employees (name, salary, department_id) VALUES ` + strings.Join(values, ", "), args
}
