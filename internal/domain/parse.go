package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxReminderSlots caps the number of daily reminders per user.
const MaxReminderSlots = 2

var (
	ErrSlotFormat     = errors.New("expected HH:MM")
	ErrSlotNotNumeric = errors.New("hours and minutes must be numbers")
	ErrSlotRange      = errors.New("hours must be 0-23, minutes 0-59")
	ErrSlotCount      = errors.New("expected exactly two times")
	ErrTooManySlots   = fmt.Errorf("at most %d reminder slots", MaxReminderSlots)
)

// SlotError reports which token failed validation and why.
type SlotError struct {
	Token string
	Err   error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("invalid time %q: %v", e.Token, e.Err)
}

func (e *SlotError) Unwrap() error { return e.Err }

// Slot is a time of day with minute precision.
type Slot struct {
	Hour   int
	Minute int
}

// String returns the canonical HH:MM form.
func (s Slot) String() string {
	return FormatMinutes(s.Hour*60 + s.Minute)
}

// ParseSlot validates a strict "HH:MM" token: five characters, ':' at index 2,
// digits elsewhere, hour 0-23 and minute 0-59.
func ParseSlot(token string) (Slot, error) {
	if len(token) != 5 || token[2] != ':' {
		return Slot{}, &SlotError{Token: token, Err: ErrSlotFormat}
	}
	if !isAllDigits(token[:2]) || !isAllDigits(token[3:]) {
		return Slot{}, &SlotError{Token: token, Err: ErrSlotNotNumeric}
	}
	h, _ := strconv.Atoi(token[:2])
	m, _ := strconv.Atoi(token[3:])
	if h > 23 || m > 59 {
		return Slot{}, &SlotError{Token: token, Err: ErrSlotRange}
	}
	return Slot{Hour: h, Minute: m}, nil
}

// ParseSlotPair splits whitespace-separated input and validates exactly two
// slots. Tokens are returned verbatim and in input order.
func ParseSlotPair(s string) ([]string, error) {
	tokens := strings.Fields(s)
	if len(tokens) != MaxReminderSlots {
		return nil, ErrSlotCount
	}
	for _, t := range tokens {
		if _, err := ParseSlot(t); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

// ValidateSlots checks a stored slot list before it is persisted.
func ValidateSlots(slots []string) error {
	if len(slots) > MaxReminderSlots {
		return ErrTooManySlots
	}
	for _, s := range slots {
		if _, err := ParseSlot(s); err != nil {
			return err
		}
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// FormatMinutes returns HH:MM for minutes since midnight (00:00..23:59).
func FormatMinutes(mins int) string {
	if mins < 0 {
		mins = 0
	}
	h := mins / 60
	m := mins % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
