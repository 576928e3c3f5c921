package domain

import "time"

// DateLayout is the calendar-date key used by the reminder ledger.
const DateLayout = "2006-01-02"

// TargetToday returns the instant at which slot falls on local's calendar day,
// in local's location. Wall times that do not exist (DST gap) or exist twice
// (DST overlap) resolve to a single real instant.
func TargetToday(local time.Time, s Slot) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), s.Hour, s.Minute, 0, 0, local.Location())
}

// LocalDate returns the calendar date of t as YYYY-MM-DD.
func LocalDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WithinWindow reports whether |now - target| < window.
func WithinWindow(now, target time.Time, window time.Duration) bool {
	d := now.Sub(target)
	if d < 0 {
		d = -d
	}
	return d < window
}

// InLocation converts nowUTC into the user's zone. An unknown zone id yields
// UTC together with the load error so callers can log it.
func InLocation(nowUTC time.Time, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nowUTC.UTC(), err
	}
	return nowUTC.In(loc), nil
}
