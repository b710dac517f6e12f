// Package database owns the PostgreSQL connection pool and the directory
// schema.
//
// It handles:
//   - creating a pgx connection pool (pgxpool) from config
//   - wiring query tracing (nrpgx5) and query logging (pgx tracelog)
//   - running the embedded tern migrations
//   - resetting and seeding the directory tables
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/acme-hr-directory/internal/config"
	loggerConfig "github.com/deppfellow/acme-hr-directory/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the shared pgx pool.
//
// Repositories receive Pool directly; the health check reaches it through
// Ping. Close is called once, from server shutdown.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// queryTracer builds the tracer chain attached to every pool connection.
//
// Behavior:
//   - nrpgx5 tracer when the New Relic agent is running
//   - pgx tracelog SQL logging in the local environment or at debug level
//   - slow query warnings whenever logging.slow_query_threshold is positive
//   - nil when nothing applies, the bare tracer when one does, and a
//     multiTracer otherwise
func queryTracer(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if cfg.Primary.Env == "local" || logger.GetLevel() == zerolog.DebugLevel {
		pgxLogger := loggerConfig.NewPgxLogger(logger.GetLevel())
		tracers = append(tracers, loggerConfig.NewPgxTracer(pgxLogger))
	}

	if threshold := cfg.Observability.Logging.SlowQueryThreshold; threshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(logger, threshold))
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		return &multiTracer{tracers: tracers}
	}
}

// New creates the connection pool and verifies it with a ping.
//
// Inputs:
//   - cfg: database section (DSN parts and pool sizing) plus observability
//   - logger: main app logger, also used by the SQL tracers
//   - loggerService: New Relic service, nil when the agent is off
//
// Behavior:
//   - Parse cfg.Database.DSN() into a pgxpool config
//   - Apply pool limits and connection lifetimes
//   - Attach the tracer chain from queryTracer
//   - Create the pool and ping it within DatabasePingTimeout
//   - Close the pool again if the ping fails, so no connections leak
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(cfg.Database.MinConns)
	pgxPoolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	pgxPoolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	if tracer := queryTracer(cfg, logger, loggerService); tracer != nil {
		pgxPoolConfig.ConnConfig.Tracer = tracer
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return &Database{
		Pool: pool,
		log:  logger,
	}, nil
}

// Ping checks that the database answers.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases every pooled connection. It blocks until connections in
// use are returned.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
