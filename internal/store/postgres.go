package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

// pgxConn is the subset of *pgxpool.Pool the repository uses.
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresRepo implements Repo on PostgreSQL.
type PostgresRepo struct {
	pool pgxConn
}

// OpenPostgres connects to databaseURL and creates the schema if needed.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return newPostgresRepo(pool), nil
}

func newPostgresRepo(pool pgxConn) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func initSchema(ctx context.Context, pool pgxConn) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			bp         TEXT NOT NULL,
			pulse      TEXT NOT NULL,
			comment    TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user_id ON entries (user_id, id DESC);`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			user_id    BIGINT PRIMARY KEY,
			timezone   TEXT NOT NULL DEFAULT 'UTC',
			reminders  TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

// Close releases the pool.
func (r *PostgresRepo) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepo) GetSettings(ctx context.Context, userID int64) (domain.Settings, error) {
	var (
		tz        string
		reminders []string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT timezone, reminders FROM user_settings WHERE user_id = $1`, userID,
	).Scan(&tz, &reminders)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultSettings(userID), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if len(reminders) == 0 {
		reminders = nil
	}
	return domain.Settings{UserID: userID, Timezone: tz, Reminders: reminders}, nil
}

func (r *PostgresRepo) SetTimezone(ctx context.Context, userID int64, tz string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_settings (user_id, timezone)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET timezone = EXCLUDED.timezone`,
		userID, tz,
	)
	if err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}
	return nil
}

func (r *PostgresRepo) SetReminders(ctx context.Context, userID int64, slots []string) error {
	if err := domain.ValidateSlots(slots); err != nil {
		return err
	}
	if slots == nil {
		slots = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_settings (user_id, reminders)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET reminders = EXCLUDED.reminders`,
		userID, slots,
	)
	if err != nil {
		return fmt.Errorf("set reminders: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListWithReminders(ctx context.Context) ([]domain.Settings, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, timezone, reminders
		FROM user_settings
		WHERE cardinality(reminders) > 0
		ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var res []domain.Settings
	for rows.Next() {
		var s domain.Settings
		if err := rows.Scan(&s.UserID, &s.Timezone, &s.Reminders); err != nil {
			return nil, fmt.Errorf("scan settings row: %w", err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings rows: %w", err)
	}
	return res, nil
}

func (r *PostgresRepo) AddEntry(ctx context.Context, e *domain.Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO entries (user_id, created_at, bp, pulse, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		e.UserID, e.CreatedAt.UTC(), e.BP, e.Pulse, e.Comment,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListEntries(ctx context.Context, userID int64) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, created_at, bp, pulse, comment
		FROM entries
		WHERE user_id = $1
		ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var res []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.CreatedAt, &e.BP, &e.Pulse, &e.Comment); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry rows: %w", err)
	}
	return res, nil
}

func (r *PostgresRepo) DeleteEntry(ctx context.Context, userID, entryID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
