package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/db"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
)

const stateTable = "hostel_state"

// PostgresStateRepository stores the snapshot in the hostel_state table created by the migrator
type PostgresStateRepository struct {
	db *db.PostgresDB
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewPostgresStateRepository creates a new PostgresStateRepository
func NewPostgresStateRepository(database *db.PostgresDB) *PostgresStateRepository {
	return &PostgresStateRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// loadQuery builds the select for every stored bucket
func (r *PostgresStateRepository) loadQuery() (string, []interface{}, error) {
	return r.sb.Select("bucket", "payload").
		From(stateTable).
		OrderBy("bucket").
		ToSql()
}

// upsertQuery builds the insert-or-replace statement for one bucket
func (r *PostgresStateRepository) upsertQuery(bucket string, payload []byte, now time.Time) (string, []interface{}, error) {
	return r.sb.Insert(stateTable).
		Columns("bucket", "payload", "updated_at").
		Values(bucket, string(payload), now).
		Suffix("ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
}

// Load reads every bucket and decodes the snapshot
func (r *PostgresStateRepository) Load(ctx context.Context) (models.Snapshot, error) {
	sql, args, err := r.loadQuery()
	if err != nil {
		logger.Error().Err(err).Msg("Error building load state SQL")
		return models.Snapshot{}, fmt.Errorf("failed to build load state query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing load state query")
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return models.Snapshot{}, fmt.Errorf("error scanning state row: %w", err)
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("error iterating state rows: %w", err)
	}
	return decodeBuckets(payloads)
}

// Save upserts every bucket inside one transaction
func (r *PostgresStateRepository) Save(ctx context.Context, snapshot models.Snapshot) error {
	payloads, err := encodeBuckets(snapshot)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, bucket := range models.Buckets {
			sql, args, err := r.upsertQuery(bucket, payloads[bucket], now)
			if err != nil {
				return fmt.Errorf("failed to build upsert %s query: %w", bucket, err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				logger.Error().Err(err).Str("bucket", bucket).Msg("Error saving state bucket")
				return fmt.Errorf("upsert %s: %w", bucket, err)
			}
		}
		return nil
	})
}

// Close releases the connection pool
func (r *PostgresStateRepository) Close() error {
	r.db.Close()
	return nil
}
