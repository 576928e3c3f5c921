package store

import (
	"encoding/json"
	"fmt"
	"time"
)

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().UTC().Unix()
	}
	return t.UTC().Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// encodeSlots serializes reminder slots for a TEXT column.
func encodeSlots(slots []string) (string, error) {
	if slots == nil {
		slots = []string{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("encode reminders: %w", err)
	}
	return string(b), nil
}

// decodeSlots is lenient: an empty or corrupt column reads as no reminders.
func decodeSlots(raw string) []string {
	if raw == "" {
		return nil
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil
	}
	if len(slots) == 0 {
		return nil
	}
	return slots
}
