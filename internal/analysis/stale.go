package analysis

import (
	"strings"
	"time"

	"github.com/ralt/pluginstats/internal/models"
)

// DefaultStaleDays is the default staleness threshold
const DefaultStaleDays = 365

// releaseLayouts are the timestamp forms accepted for last_release
var releaseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// StalePlugin is a plugin whose most recent release predates the threshold
type StalePlugin struct {
	Record      models.ExtendedRecord
	LastRelease time.Time
}

// Age returns how long before now the plugin was last released
func (s StalePlugin) Age(now time.Time) time.Duration {
	return now.Sub(s.LastRelease)
}

// ParseRelease parses a last_release value. Naive timestamps are taken as UTC.
func ParseRelease(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindStale returns the records released strictly before now-threshold, in
// input order. Records with a missing or unparseable release date are skipped.
func FindStale(records []models.ExtendedRecord, threshold time.Duration, now time.Time) []StalePlugin {
	cutoff := now.Add(-threshold)

	var stale []StalePlugin
	for _, r := range records {
		t, ok := ParseRelease(r.LastRelease)
		if !ok || !t.Before(cutoff) {
			continue
		}
		stale = append(stale, StalePlugin{Record: r, LastRelease: t})
	}
	return stale
}

// StaleThreshold converts a threshold in days to a duration
func StaleThreshold(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
