package domain

import "time"

// DefaultTimezone is used for users who never picked one.
const DefaultTimezone = "UTC"

// Settings represents per-user preferences: timezone and daily reminder slots.
type Settings struct {
	UserID    int64
	Timezone  string   // IANA identifier
	Reminders []string // "HH:MM", at most MaxReminderSlots, order preserved
}

// DefaultSettings returns the settings a user has before any write.
func DefaultSettings(userID int64) Settings {
	return Settings{UserID: userID, Timezone: DefaultTimezone}
}

// HasReminders reports whether at least one slot is configured.
func (s Settings) HasReminders() bool {
	return len(s.Reminders) > 0
}

// Location resolves the settings timezone, falling back to UTC.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

// Entry is a single diary record.
type Entry struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time // UTC
	BP        string
	Pulse     string
	Comment   string
}

// LocalStamp formats the creation time in loc as "YYYY-MM-DD HH:MM".
func (e Entry) LocalStamp(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return e.CreatedAt.In(loc).Format("2006-01-02 15:04")
}
