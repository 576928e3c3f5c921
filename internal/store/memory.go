package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/saymealien/bloodpressurebot/internal/domain"
)

// MemoryRepo keeps everything in process memory. Used for local runs
// (STORE_DRIVER=memory) and as a test double.
type MemoryRepo struct {
	mu       sync.RWMutex
	nextID   int64
	entries  map[int64][]domain.Entry // userID -> entries, oldest first
	settings map[int64]domain.Settings
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		entries:  make(map[int64][]domain.Entry),
		settings: make(map[int64]domain.Settings),
	}
}

func (r *MemoryRepo) Close() error { return nil }

func (r *MemoryRepo) GetSettings(_ context.Context, userID int64) (domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.settings[userID]
	if !ok {
		return domain.DefaultSettings(userID), nil
	}
	return cloneSettings(s), nil
}

func (r *MemoryRepo) SetTimezone(_ context.Context, userID int64, tz string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		s = domain.DefaultSettings(userID)
	}
	s.Timezone = tz
	r.settings[userID] = s
	return nil
}

func (r *MemoryRepo) SetReminders(_ context.Context, userID int64, slots []string) error {
	if err := domain.ValidateSlots(slots); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		s = domain.DefaultSettings(userID)
	}
	s.Reminders = append([]string(nil), slots...)
	r.settings[userID] = s
	return nil
}

func (r *MemoryRepo) ListWithReminders(_ context.Context) ([]domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []domain.Settings
	for _, s := range r.settings {
		if s.HasReminders() {
			res = append(res, cloneSettings(s))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UserID < res[j].UserID })
	return res, nil
}

func (r *MemoryRepo) AddEntry(_ context.Context, e *domain.Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	r.entries[e.UserID] = append(r.entries[e.UserID], *e)
	return nil
}

func (r *MemoryRepo) ListEntries(_ context.Context, userID int64) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.entries[userID]
	if len(list) == 0 {
		return nil, nil
	}
	res := make([]domain.Entry, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		res = append(res, list[i])
	}
	return res, nil
}

func (r *MemoryRepo) DeleteEntry(_ context.Context, userID, entryID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.entries[userID]
	for i, e := range list {
		if e.ID == entryID {
			r.entries[userID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func cloneSettings(s domain.Settings) domain.Settings {
	s.Reminders = append([]string(nil), s.Reminders...)
	if len(s.Reminders) == 0 {
		s.Reminders = nil
	}
	return s
}
