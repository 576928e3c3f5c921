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

	"github.com/saymealien/bloodpressurebot/internal/domain"
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

// GetSettings returns the user's settings, or defaults if none were stored.
func (r *SQLiteRepo) GetSettings(ctx context.Context, userID int64) (domain.Settings, error) {
	var tz, reminders string
	err := r.db.QueryRowContext(ctx,
		`SELECT timezone, reminders FROM user_settings WHERE user_id = ?`, userID,
	).Scan(&tz, &reminders)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(userID), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return domain.Settings{UserID: userID, Timezone: tz, Reminders: decodeSlots(reminders)}, nil
}

// SetTimezone upserts the timezone, keeping existing reminders.
func (r *SQLiteRepo) SetTimezone(ctx context.Context, userID int64, tz string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, timezone, reminders, created_at)
		VALUES (?, ?, '[]', ?)
		ON CONFLICT(user_id) DO UPDATE SET
			timezone = excluded.timezone`,
		userID, tz, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}
	return nil
}

// SetReminders upserts the reminder slots, keeping the existing timezone.
func (r *SQLiteRepo) SetReminders(ctx context.Context, userID int64, slots []string) error {
	if err := domain.ValidateSlots(slots); err != nil {
		return err
	}
	raw, err := encodeSlots(slots)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, timezone, reminders, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			reminders = excluded.reminders`,
		userID, domain.DefaultTimezone, raw, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("set reminders: %w", err)
	}
	return nil
}

// ListWithReminders returns every user with at least one reminder slot.
func (r *SQLiteRepo) ListWithReminders(ctx context.Context) ([]domain.Settings, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, timezone, reminders
		FROM user_settings
		WHERE reminders IS NOT NULL AND reminders != '[]'
		ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var res []domain.Settings
	for rows.Next() {
		var (
			userID    int64
			tz        string
			reminders string
		)
		if err := rows.Scan(&userID, &tz, &reminders); err != nil {
			return nil, err
		}
		s := domain.Settings{UserID: userID, Timezone: tz, Reminders: decodeSlots(reminders)}
		if s.HasReminders() {
			res = append(res, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// AddEntry inserts e and fills in its ID (and CreatedAt when zero).
func (r *SQLiteRepo) AddEntry(ctx context.Context, e *domain.Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	created := toUnix(e.CreatedAt)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (user_id, created_at, bp, pulse, comment)
		VALUES (?, ?, ?, ?, ?)`,
		e.UserID, created, e.BP, e.Pulse, e.Comment,
	)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	e.ID = id
	e.CreatedAt = fromUnix(created)
	return nil
}

// ListEntries returns the user's entries, newest first.
func (r *SQLiteRepo) ListEntries(ctx context.Context, userID int64) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, created_at, bp, pulse, comment
		FROM entries
		WHERE user_id = ?
		ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var res []domain.Entry
	for rows.Next() {
		var (
			e       domain.Entry
			created int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &created, &e.BP, &e.Pulse, &e.Comment); err != nil {
			return nil, err
		}
		e.CreatedAt = fromUnix(created)
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteEntry removes one of the user's entries. It reports false when no row
// matched, e.g. the entry was already gone or belongs to someone else.
func (r *SQLiteRepo) DeleteEntry(ctx context.Context, userID, entryID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM entries WHERE id = ? AND user_id = ?`, entryID, userID)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	return n > 0, nil
}
