package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

func newMockRepo(t *testing.T) (*PostgresRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return newPostgresRepo(mock), mock
}

func TestPostgres_InitSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS entries").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_entries_user_id").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS user_settings").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, initSchema(context.Background(), mock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetSettingsDefaults(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT timezone, reminders FROM user_settings").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	s, err := r.GetSettings(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultSettings(9), s)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetSettings(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT timezone, reminders FROM user_settings").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"timezone", "reminders"}).
			AddRow("Asia/Tokyo", []string{"08:00", "20:00"}))

	s, err := r.GetSettings(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "Asia/Tokyo", s.Timezone)
	require.Equal(t, []string{"08:00", "20:00"}, s.Reminders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetRemindersValidatesBeforeWriting(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	err := r.SetReminders(context.Background(), 1, []string{"25:00"})
	require.True(t, errors.Is(err, domain.ErrSlotRange))

	mock.ExpectExec("INSERT INTO user_settings").
		WithArgs(int64(1), []string{"07:00", "19:00"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.SetReminders(context.Background(), 1, []string{"07:00", "19:00"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_AddEntryReturnsID(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	created := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO entries").
		WithArgs(int64(7), created, "120/80", "72", "felt dizzy").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	e := &domain.Entry{UserID: 7, CreatedAt: created, BP: "120/80", Pulse: "72", Comment: "felt dizzy"}
	require.NoError(t, r.AddEntry(context.Background(), e))
	require.Equal(t, int64(11), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListEntries(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	created := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, user_id, created_at, bp, pulse, comment").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at", "bp", "pulse", "comment"}).
			AddRow(int64(2), int64(7), created.Add(time.Hour), "130/85", "80", "").
			AddRow(int64(1), int64(7), created, "120/80", "72", "ok"))

	list, err := r.ListEntries(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, int64(2), list[0].ID)
	require.Equal(t, "ok", list[1].Comment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteEntry(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM entries").
		WithArgs(int64(5), int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM entries").
		WithArgs(int64(5), int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ok, err := r.DeleteEntry(context.Background(), 7, 5)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = r.DeleteEntry(context.Background(), 7, 5)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListWithRemindersWrapsErrors(t *testing.T) {
	r, mock := newMockRepo(t)
	defer mock.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT user_id, timezone, reminders").WillReturnError(boom)

	_, err := r.ListWithReminders(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
