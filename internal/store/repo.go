package store

import (
	"context"
	"errors"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

// ErrNilEntry is returned when AddEntry receives no entry.
var ErrNilEntry = errors.New("nil entry")

// SettingsRepo stores per-user timezone and reminder slots.
// GetSettings returns domain.DefaultSettings for unknown users.
type SettingsRepo interface {
	GetSettings(ctx context.Context, userID int64) (domain.Settings, error)
	SetTimezone(ctx context.Context, userID int64, tz string) error
	SetReminders(ctx context.Context, userID int64, slots []string) error
	ListWithReminders(ctx context.Context) ([]domain.Settings, error)
}

// EntryRepo stores diary entries. ListEntries is newest-first.
type EntryRepo interface {
	AddEntry(ctx context.Context, e *domain.Entry) error
	ListEntries(ctx context.Context, userID int64) ([]domain.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) (bool, error)
}

// Repo is the full storage surface used by the application.
type Repo interface {
	SettingsRepo
	EntryRepo
	Close() error
}
