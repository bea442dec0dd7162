package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharetube/watchparty/internal/repository/room"
)

type repo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPool creates a pgx connection pool and checks connectivity.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func NewRepo(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (*repo, error) {
	const q = `CREATE TABLE IF NOT EXISTS rooms (
		id            TEXT PRIMARY KEY,
		data          JSONB NOT NULL,
		last_activity BIGINT NOT NULL
	)`
	if _, err := pool.Exec(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create rooms table: %w", err)
	}

	return &repo{pool: pool, logger: logger}, nil
}

func (r repo) SaveSnapshot(ctx context.Context, snapshot room.Snapshot) error {
	r.logger.DebugContext(ctx, "called", "rooms", len(snapshot))

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM rooms`)
	for id, rm := range snapshot {
		data, err := room.Encode(rm)
		if err != nil {
			return err
		}

		batch.Queue(`INSERT INTO rooms (id, data, last_activity) VALUES ($1, $2, $3)`, id, string(data), rm.LastActivity)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

func (r repo) GetSnapshot(ctx context.Context) (room.Snapshot, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, data FROM rooms`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	snapshot := make(room.Snapshot)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}

		rm, err := room.Decode(id, data)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping snapshot entry", "room_id", id, "error", err)
			continue
		}

		snapshot[id] = rm
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}

	return snapshot, nil
}
