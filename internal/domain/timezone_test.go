package domain

import (
	"errors"
	"testing"
)

func TestValidateTZ_RoundTrip(t *testing.T) {
	for _, tz := range []string{"UTC", "Asia/Tokyo", "America/Argentina/Buenos_Aires", "Europe/Paris"} {
		got, err := ValidateTZ(tz)
		if err != nil {
			t.Fatalf("%s: %v", tz, err)
		}
		if got != tz {
			t.Fatalf("want %s, got %s", tz, got)
		}
	}
}

func TestValidateTZ_Rejects(t *testing.T) {
	for _, tz := range []string{"", "Local", "europe/paris", "Europ/Pariz", "Mars/Olympus"} {
		if _, err := ValidateTZ(tz); !errors.Is(err, ErrUnknownTimezone) {
			t.Fatalf("%q: want ErrUnknownTimezone, got %v", tz, err)
		}
	}
}

func TestSuggestTimezones_Typo(t *testing.T) {
	got := SuggestTimezones("Europ/Pariz")
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("want 1..5 suggestions, got %v", got)
	}
	if got[0] != "Europe/Paris" {
		t.Fatalf("want Europe/Paris first, got %v", got)
	}
}

func TestSuggestTimezones_NoMatch(t *testing.T) {
	if got := SuggestTimezones("qqqqqqqqqqqqqqqqqqqq"); len(got) != 0 {
		t.Fatalf("want no suggestions, got %v", got)
	}
}

func TestPresetZone(t *testing.T) {
	if z, ok := PresetZone("Tokyo"); !ok || z != "Asia/Tokyo" {
		t.Fatalf("want Asia/Tokyo, got %q %v", z, ok)
	}
	if _, ok := PresetZone("Atlantis"); ok {
		t.Fatalf("unexpected preset")
	}
	for _, p := range TimezonePresets {
		if _, err := ValidateTZ(p.Zone); err != nil {
			t.Fatalf("preset %s has invalid zone %s: %v", p.Label, p.Zone, err)
		}
	}
}
