package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// AddAlert inserts a new alert and returns its fresh identifier.
func (r *SQLiteRepo) AddAlert(ctx context.Context, a *domain.Alert) (int64, error) {
	if a == nil {
		return 0, errors.New("nil alert")
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (chat_id, coach_name, days_of_week, time_range, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ChatID, a.Coach, a.Days.String(), a.TimeRange, created.Unix(),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

// ListAlerts returns all alerts owned by chatID, unordered.
func (r *SQLiteRepo) ListAlerts(ctx context.Context, chatID int64) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, coach_name, days_of_week, time_range, created_at
		FROM alerts
		WHERE chat_id = ?`,
		chatID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListAllAlerts returns every alert across all owners; the matching pass
// feeds the whole set to the engine.
func (r *SQLiteRepo) ListAllAlerts(ctx context.Context) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, coach_name, days_of_week, time_range, created_at
		FROM alerts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func scanAlerts(rows *sql.Rows) ([]domain.Alert, error) {
	var res []domain.Alert
	for rows.Next() {
		var (
			a       domain.Alert
			days    string
			created int64
		)
		if err := rows.Scan(&a.ID, &a.ChatID, &a.Coach, &days, &a.TimeRange, &created); err != nil {
			return nil, err
		}
		ds, err := domain.ParseDays(days)
		if err != nil {
			return nil, fmt.Errorf("alert %d: stored days %q: %w", a.ID, days, err)
		}
		a.Days = ds
		a.CreatedAt = time.Unix(created, 0).UTC()
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteAlert removes an alert by id. Deleting a nonexistent id is a no-op.
func (r *SQLiteRepo) DeleteAlert(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	return err
}

// HasSent reports whether (chatID, key) is already in the ledger.
func (r *SQLiteRepo) HasSent(ctx context.Context, chatID int64, key string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM sent_notifications
		WHERE chat_id = ? AND notification_key = ?`,
		chatID, key,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordSent appends a ledger entry for (chatID, key). Inserting an existing
// pair is silently ignored, so the call is idempotent and two racing passes
// cannot produce duplicate rows.
func (r *SQLiteRepo) RecordSent(ctx context.Context, chatID int64, key string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sent_notifications (chat_id, notification_key, sent_at)
		VALUES (?, ?, ?)
		ON CONFLICT(chat_id, notification_key) DO NOTHING`,
		chatID, key, time.Now().UTC().Unix(),
	)
	return err
}
