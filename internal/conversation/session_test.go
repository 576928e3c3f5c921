package conversation

import (
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/require"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

func TestTable_GetReturnsCopy(t *testing.T) {
	tbl := NewTable(0, clock.NewFake(), nil)

	s := tbl.Get(7)
	require.Equal(t, Idle, s.State)
	require.Equal(t, int64(7), s.UserID)

	s.State = AwaitingPulse
	s.Pending[fieldBP] = "120/80"
	s.Snapshot = []domain.Entry{{ID: 1}}
	tbl.Put(s)

	got := tbl.Get(7)
	got.Pending[fieldBP] = "mutated"
	got.Snapshot[0].ID = 99

	again := tbl.Get(7)
	require.Equal(t, "120/80", again.Pending[fieldBP])
	require.Equal(t, int64(1), again.Snapshot[0].ID)
}

func TestTable_PutIdleDrops(t *testing.T) {
	tbl := NewTable(0, clock.NewFake(), nil)

	tbl.Put(Session{UserID: 1, State: AwaitingBP, Pending: map[string]string{}})
	require.Equal(t, 1, tbl.Len())

	tbl.Put(Session{UserID: 1, State: Idle})
	require.Zero(t, tbl.Len())
}

func TestTable_EvictIdleSessions(t *testing.T) {
	clk := clock.NewFake()
	tbl := NewTable(30*time.Minute, clk, nil)

	tbl.Put(Session{UserID: 1, State: AwaitingBP})
	clk.Add(20 * time.Minute)
	tbl.Put(Session{UserID: 2, State: AwaitingExportFormat})

	clk.Add(15 * time.Minute)
	require.Equal(t, 1, tbl.Evict())
	require.Equal(t, Idle, tbl.Get(1).State)
	require.Equal(t, AwaitingExportFormat, tbl.Get(2).State)

	clk.Add(time.Hour)
	require.Equal(t, 1, tbl.Evict())
	require.Zero(t, tbl.Len())
}

func TestTable_EvictDisabled(t *testing.T) {
	clk := clock.NewFake()
	tbl := NewTable(0, clk, nil)
	tbl.Put(Session{UserID: 1, State: AwaitingBP})

	clk.Add(365 * 24 * time.Hour)
	require.Zero(t, tbl.Evict())
	require.Equal(t, 1, tbl.Len())
}

func TestTable_LockUserNegativeIDs(t *testing.T) {
	tbl := NewTable(0, nil, nil)

	// Group chats have negative ids.
	unlock := tbl.lockUser(-100123)
	unlock()
	unlock = tbl.lockUser(-100123)
	unlock()
}

func TestState_String(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "awaiting_export_format", AwaitingExportFormat.String())
	require.Equal(t, "unknown", State(42).String())
}
