// Package database owns the PostgreSQL connection pool.
//
// The pool is built once at startup and handed to the stores explicitly;
// nothing in this package keeps process-wide state.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/newsapi/internal/config"
	zapadapter "github.com/jackc/pgx-zap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

const PingTimeout = 10 * time.Second

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Database struct {
	Pool *pgxpool.Pool
	log  *zap.SugaredLogger
}

// New creates the pool and pings it so startup fails fast when PostgreSQL is
// unreachable. With trace set every query is logged at debug level.
func New(ctx context.Context, cfg config.DatabaseConfig, trace bool, logger *zap.Logger) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}

	if trace {
		poolConfig.ConnConfig.Tracer = queryTracer(logger.Named("pgx"))
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Database{
		Pool: pool,
		log:  logger.Sugar(),
	}
	db.log.Infow("connected to the database",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
	)

	return db, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *Database) Close() {
	db.log.Infow("closing database connection pool")
	db.Pool.Close()
}

// queryTracer logs every pgx query through zap at debug level.
func queryTracer(l *zap.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   zapadapter.NewLogger(l),
		LogLevel: tracelog.LogLevelDebug,
	}
}
