package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/pkg/logger"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStateRepository stores the snapshot in a single SQLite table, one JSON payload per bucket
type SQLiteStateRepository struct {
	db *sql.DB
}

// NewSQLiteStateRepository opens (and if needed creates) the database at path
func NewSQLiteStateRepository(path string) (*SQLiteStateRepository, error) {
	if path == "" {
		path = "hostelsphere.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrStorageUnavailable, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	logger.Info().Str("path", path).Msg("SQLite state store ready")
	return &SQLiteStateRepository{db: db}, nil
}

// Load reads every bucket and decodes the snapshot
func (r *SQLiteStateRepository) Load(ctx context.Context) (models.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return models.Snapshot{}, fmt.Errorf("scan: %w", err)
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("iterate state: %w", err)
	}
	return decodeBuckets(payloads)
}

// Save upserts every bucket inside one transaction
func (r *SQLiteStateRepository) Save(ctx context.Context, snapshot models.Snapshot) (retErr error) {
	payloads, err := encodeBuckets(snapshot)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range models.Buckets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
			bucket, payloads[bucket]); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	return tx.Commit()
}

// Close closes the database handle
func (r *SQLiteStateRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for tests
func (r *SQLiteStateRepository) DB() *sql.DB { return r.db }
