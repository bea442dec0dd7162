package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sharetube/watchparty/internal/repository/room"
	_ "modernc.org/sqlite"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database file at path.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	return db, nil
}

func NewRepo(ctx context.Context, db *sql.DB, logger *slog.Logger) (*repo, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS rooms (
			id            TEXT PRIMARY KEY,
			data          TEXT NOT NULL,
			last_activity INTEGER NOT NULL
		);
	`); err != nil {
		return nil, fmt.Errorf("failed to create rooms table: %w", err)
	}

	return &repo{db: db, logger: logger}, nil
}

func (r repo) SaveSnapshot(ctx context.Context, snapshot room.Snapshot) error {
	r.logger.DebugContext(ctx, "called", "rooms", len(snapshot))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return fmt.Errorf("failed to clear rooms: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO rooms (id, data, last_activity) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for id, rm := range snapshot {
		data, err := room.Encode(rm)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, id, string(data), rm.LastActivity); err != nil {
			return fmt.Errorf("failed to insert room %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

func (r repo) GetSnapshot(ctx context.Context) (room.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM rooms`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	snapshot := make(room.Snapshot)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}

		rm, err := room.Decode(id, []byte(data))
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
