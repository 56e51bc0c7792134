package analysis

import (
	"errors"
	"time"

	"github.com/ralt/pluginstats/internal/models"
)

// Options tunes Analyze
type Options struct {
	// StaleThreshold disables the stale plugin search when zero
	StaleThreshold time.Duration
	Now            time.Time
}

// Highlights are record listings surfaced in the report
type Highlights struct {
	PyPIOnly         []models.CombinedRecord
	Unlicensed       []models.CombinedRecord
	PotentiallyStale []models.CombinedRecord
	WellMaintained   []models.CombinedRecord
	Stale            []StalePlugin
}

// Summary is the outcome of one analysis run
type Summary struct {
	Records      []models.CombinedRecord
	Distribution DistributionStats
	Versions     VersionStats
	Licenses     LicenseStats
	Highlights   Highlights
	StaleDays    int
}

// Analyze merges the feeds and runs every aggregator. Version, license and
// highlight figures cover active plugins only.
func Analyze(feeds *models.Feeds, opts Options) (*Summary, error) {
	if feeds == nil || feeds.Classifiers == nil || feeds.Extended == nil {
		return nil, models.NewError(models.ErrMissingData, "", errors.New("feeds not loaded, fetch them first"))
	}

	records := Combine(feeds.Classifiers, feeds.Extended)
	active := Active(records)

	s := &Summary{
		Records:      records,
		Distribution: Distribution(records),
		Versions:     Versions(active),
		Licenses:     Licenses(active),
		Highlights: Highlights{
			PyPIOnly:         PyPIOnly(active),
			Unlicensed:       Unlicensed(active),
			PotentiallyStale: PotentiallyStale(active),
			WellMaintained:   WellMaintained(active),
		},
	}

	if opts.StaleThreshold > 0 {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		s.Highlights.Stale = FindStale(feeds.Extended, opts.StaleThreshold, now)
		s.StaleDays = int(opts.StaleThreshold / (24 * time.Hour))
	}
	return s, nil
}
