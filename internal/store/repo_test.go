package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

// repoFactories lists every Repo implementation that runs without external services.
func repoFactories(t *testing.T) map[string]func() Repo {
	t.Helper()
	return map[string]func() Repo{
		"memory": func() Repo { return NewMemory() },
		"sqlite": func() Repo {
			r, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "diary.db"))
			require.NoError(t, err)
			return r
		},
	}
}

func TestRepo_SettingsDefaultsAndRoundTrip(t *testing.T) {
	for name, open := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open()
			defer r.Close()

			s, err := r.GetSettings(ctx, 42)
			require.NoError(t, err)
			require.Equal(t, domain.DefaultSettings(42), s)

			require.NoError(t, r.SetTimezone(ctx, 42, "America/Argentina/Buenos_Aires"))
			require.NoError(t, r.SetReminders(ctx, 42, []string{"20:00", "08:00"}))
			// Timezone write must not clobber reminders and vice versa.
			require.NoError(t, r.SetTimezone(ctx, 42, "Asia/Tokyo"))

			s, err = r.GetSettings(ctx, 42)
			require.NoError(t, err)
			require.Equal(t, "Asia/Tokyo", s.Timezone)
			require.Equal(t, []string{"20:00", "08:00"}, s.Reminders)
		})
	}
}

func TestRepo_SetRemindersRejectsInvalid(t *testing.T) {
	for name, open := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open()
			defer r.Close()

			err := r.SetReminders(ctx, 1, []string{"07:00", "12:00", "19:00"})
			require.True(t, errors.Is(err, domain.ErrTooManySlots))
			err = r.SetReminders(ctx, 1, []string{"7:00"})
			require.True(t, errors.Is(err, domain.ErrSlotFormat))

			s, err := r.GetSettings(ctx, 1)
			require.NoError(t, err)
			require.Empty(t, s.Reminders)
		})
	}
}

func TestRepo_ListWithReminders(t *testing.T) {
	for name, open := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open()
			defer r.Close()

			require.NoError(t, r.SetTimezone(ctx, 1, "Europe/Berlin"))
			require.NoError(t, r.SetReminders(ctx, 2, []string{"07:00", "19:00"}))
			require.NoError(t, r.SetReminders(ctx, 3, []string{"09:00", "21:00"}))
			require.NoError(t, r.SetReminders(ctx, 3, []string{}))

			list, err := r.ListWithReminders(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			require.Equal(t, int64(2), list[0].UserID)
			require.Equal(t, domain.DefaultTimezone, list[0].Timezone)
			require.Equal(t, []string{"07:00", "19:00"}, list[0].Reminders)
		})
	}
}

func TestRepo_EntriesNewestFirstAndDelete(t *testing.T) {
	for name, open := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open()
			defer r.Close()

			base := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)
			var ids []int64
			for i, bp := range []string{"110/70", "120/80", "130/85"} {
				e := &domain.Entry{UserID: 7, CreatedAt: base.Add(time.Duration(i) * time.Hour), BP: bp, Pulse: "70", Comment: "c"}
				require.NoError(t, r.AddEntry(ctx, e))
				require.NotZero(t, e.ID)
				ids = append(ids, e.ID)
			}
			require.NoError(t, r.AddEntry(ctx, &domain.Entry{UserID: 8, BP: "100/60", Pulse: "60"}))

			list, err := r.ListEntries(ctx, 7)
			require.NoError(t, err)
			require.Len(t, list, 3)
			require.Equal(t, "130/85", list[0].BP)
			require.Equal(t, "110/70", list[2].BP)
			require.True(t, list[2].CreatedAt.Equal(base))

			// Someone else's entry is never touched.
			ok, err := r.DeleteEntry(ctx, 8, ids[1])
			require.NoError(t, err)
			require.False(t, ok)

			ok, err = r.DeleteEntry(ctx, 7, ids[1])
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = r.DeleteEntry(ctx, 7, ids[1])
			require.NoError(t, err)
			require.False(t, ok)

			list, err = r.ListEntries(ctx, 7)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, ids[2], list[0].ID)
			require.Equal(t, ids[0], list[1].ID)
		})
	}
}

func TestRepo_AddNilEntry(t *testing.T) {
	for name, open := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			r := open()
			defer r.Close()
			require.ErrorIs(t, r.AddEntry(context.Background(), nil), ErrNilEntry)
		})
	}
}

func TestOpenSQLite_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "diary.db")

	r, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, r.AddEntry(ctx, &domain.Entry{UserID: 1, BP: "120/80", Pulse: "72"}))
	require.NoError(t, r.Close())

	r, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer r.Close()
	list, err := r.ListEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
