package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/jmhodges/clock"

	"github.com/saymealien/bloodpressurebot/internal/domain"
	"github.com/saymealien/bloodpressurebot/internal/metrics"
)

// Pending field keys collected by the add flow.
const (
	fieldBP    = "bp"
	fieldPulse = "pulse"
)

const lockStripes = 64

// Session is one user's active conversation.
type Session struct {
	UserID    int64
	State     State
	Pending   map[string]string
	Snapshot  []domain.Entry // captured when the delete flow starts; read-only
	UpdatedAt time.Time
}

func (s *Session) reset() {
	s.State = Idle
	s.Pending = make(map[string]string)
	s.Snapshot = nil
}

func (s Session) clone() Session {
	c := s
	c.Pending = make(map[string]string, len(s.Pending))
	for k, v := range s.Pending {
		c.Pending[k] = v
	}
	if s.Snapshot != nil {
		c.Snapshot = append([]domain.Entry(nil), s.Snapshot...)
	}
	return c
}

// Table owns the sessions of all users, keyed by user id. Users without an
// entry are Idle.
type Table struct {
	mu          sync.RWMutex
	sessions    map[int64]*Session
	userLocks   [lockStripes]sync.Mutex
	clock       clock.Clock
	idleTimeout time.Duration
	metrics     *metrics.Metrics
}

// NewTable creates a session table. Sessions untouched for idleTimeout are
// removed by Evict; zero disables eviction.
func NewTable(idleTimeout time.Duration, clk clock.Clock, m *metrics.Metrics) *Table {
	if clk == nil {
		clk = clock.New()
	}
	return &Table{
		sessions:    make(map[int64]*Session),
		clock:       clk,
		idleTimeout: idleTimeout,
		metrics:     m,
	}
}

// lockUser serializes event handling for one user. Different users map to
// independent stripes most of the time.
func (t *Table) lockUser(userID int64) func() {
	idx := userID % lockStripes
	if idx < 0 {
		idx = -idx
	}
	l := &t.userLocks[idx]
	l.Lock()
	return l.Unlock
}

// Get returns a copy of the user's session, or a fresh Idle one.
func (t *Table) Get(userID int64) Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.sessions[userID]; ok {
		return s.clone()
	}
	return Session{UserID: userID, State: Idle, Pending: make(map[string]string)}
}

// Put stores s. An Idle session is dropped instead, since Idle is the default.
func (t *Table) Put(s Session) {
	if s.State == Idle {
		t.Reset(s.UserID)
		return
	}
	c := s.clone()
	c.UpdatedAt = t.clock.Now()

	t.mu.Lock()
	t.sessions[s.UserID] = &c
	n := len(t.sessions)
	t.mu.Unlock()
	t.metrics.SetActiveSessions(n)
}

// Reset returns the user to Idle, discarding pending fields and snapshot.
func (t *Table) Reset(userID int64) {
	t.mu.Lock()
	delete(t.sessions, userID)
	n := len(t.sessions)
	t.mu.Unlock()
	t.metrics.SetActiveSessions(n)
}

// Len returns the number of non-Idle sessions.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}

// Evict drops sessions idle for longer than the table's timeout and returns
// how many were removed.
func (t *Table) Evict() int {
	if t.idleTimeout <= 0 {
		return 0
	}
	now := t.clock.Now()

	t.mu.Lock()
	removed := 0
	for id, s := range t.sessions {
		if now.Sub(s.UpdatedAt) >= t.idleTimeout {
			delete(t.sessions, id)
			removed++
		}
	}
	n := len(t.sessions)
	t.mu.Unlock()

	if removed > 0 {
		t.metrics.SetActiveSessions(n)
	}
	return removed
}

// StartJanitor runs Evict every interval until ctx is done.
func (t *Table) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Evict()
			}
		}
	}()
}
