package domain

import (
	_ "embed"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrUnknownTimezone is returned for identifiers outside the IANA catalogue.
var ErrUnknownTimezone = errors.New("unknown timezone")

const (
	suggestLimit  = 5
	suggestCutoff = 0.6
)

//go:embed zones.txt
var zonesRaw string

var (
	zonesOnce sync.Once
	zoneList  []string
	zoneSet   map[string]struct{}
)

// TimezonePreset maps a menu label to an IANA zone id.
type TimezonePreset struct {
	Label string
	Zone  string
}

// TimezonePresets are offered as buttons, in display order.
var TimezonePresets = []TimezonePreset{
	{"New York", "America/New_York"},
	{"London", "Europe/London"},
	{"Berlin", "Europe/Berlin"},
	{"Tokyo", "Asia/Tokyo"},
	{"Moscow", "Europe/Moscow"},
	{"Sydney", "Australia/Sydney"},
	{"Los Angeles", "America/Los_Angeles"},
}

// PresetZone returns the zone for a preset label.
func PresetZone(label string) (string, bool) {
	for _, p := range TimezonePresets {
		if p.Label == label {
			return p.Zone, true
		}
	}
	return "", false
}

func loadZones() {
	zoneSet = make(map[string]struct{})
	for _, line := range strings.Split(zonesRaw, "\n") {
		z := strings.TrimSpace(line)
		if z == "" || strings.HasPrefix(z, "#") {
			continue
		}
		zoneList = append(zoneList, z)
		zoneSet[z] = struct{}{}
	}
	sort.Strings(zoneList)
}

// Zones returns the canonical list of IANA identifiers, sorted.
func Zones() []string {
	zonesOnce.Do(loadZones)
	out := make([]string, len(zoneList))
	copy(out, zoneList)
	return out
}

// ValidateTZ checks that tz is an exact catalogue identifier that the runtime
// can load. The identifier is returned unchanged.
func ValidateTZ(tz string) (string, error) {
	zonesOnce.Do(loadZones)
	if _, ok := zoneSet[tz]; !ok {
		return "", ErrUnknownTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", err
	}
	return tz, nil
}

// SuggestTimezones returns up to five catalogue identifiers closest to input,
// best match first. Similarity is the sequence-matcher ratio over characters
// with a 0.6 cutoff; equal scores are ordered by identifier, descending.
func SuggestTimezones(input string) []string {
	zonesOnce.Do(loadZones)
	if input == "" {
		return nil
	}

	type scored struct {
		score float64
		zone  string
	}
	m := difflib.NewMatcher(nil, strings.Split(input, ""))
	var hits []scored
	for _, z := range zoneList {
		m.SetSeq1(strings.Split(z, ""))
		if m.RealQuickRatio() < suggestCutoff || m.QuickRatio() < suggestCutoff {
			continue
		}
		if r := m.Ratio(); r >= suggestCutoff {
			hits = append(hits, scored{r, z})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].zone > hits[j].zone
	})
	if len(hits) > suggestLimit {
		hits = hits[:suggestLimit]
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.zone)
	}
	return out
}
