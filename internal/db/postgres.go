package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelsphere/internal/config"
)

const (
	connectTimeout = 10 * time.Second
	txTimeout      = 30 * time.Second
)

// PostgresDB wraps the pgx pool shared by the snapshot repository and the migrator
type PostgresDB struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgresDB connects to the database described by cfg and pings it once
func NewPostgresDB(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}
	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = lifetime

	dbLog := lgr.With().Str("component", "postgres").Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Logger()
	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			dbLog.Warn().Err(err).Msg("Dropping unhealthy connection")
			return false
		}
		return true
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	dbLog.Debug().Int32("maxConns", poolConfig.MaxConns).Msg("Connection pool ready")
	return &PostgresDB{Pool: pool, log: dbLog}, nil
}

// Close releases every pooled connection
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn in a transaction, committing when it returns nil.
// Contexts without a deadline get txTimeout.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, txTimeout)
		defer cancel()
	}
	err := pgx.BeginTxFunc(ctx, db.Pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
	if err != nil {
		db.log.Error().Err(err).Msg("Transaction rolled back")
	}
	return err
}
