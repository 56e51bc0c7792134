package analysis

import "github.com/ralt/pluginstats/internal/models"

// PlatformBuckets partitions records by where they are published
type PlatformBuckets struct {
	PyPIOnly  int
	CondaOnly int
	Both      int
	Neither   int
}

// Total returns the number of records across all four buckets
func (b PlatformBuckets) Total() int {
	return b.PyPIOnly + b.CondaOnly + b.Both + b.Neither
}

// OnPyPI returns the records published on PyPI
func (b PlatformBuckets) OnPyPI() int {
	return b.PyPIOnly + b.Both
}

// OnConda returns the records published on conda-forge
func (b PlatformBuckets) OnConda() int {
	return b.CondaOnly + b.Both
}

// DistributionStats summarizes status counts and platform coverage
type DistributionStats struct {
	Total     int
	Active    int
	Withdrawn int
	Deleted   int

	All        PlatformBuckets
	ActiveOnly PlatformBuckets
}

// Distribution counts records per status and per platform bucket, over the
// whole set and over the active subset.
func Distribution(records []models.CombinedRecord) DistributionStats {
	stats := DistributionStats{Total: len(records)}
	for _, r := range records {
		switch r.Category {
		case models.StatusActive:
			stats.Active++
			addToBucket(&stats.ActiveOnly, r)
		case models.StatusWithdrawn:
			stats.Withdrawn++
		case models.StatusDeleted:
			stats.Deleted++
		}
		addToBucket(&stats.All, r)
	}
	return stats
}

func addToBucket(b *PlatformBuckets, r models.CombinedRecord) {
	switch {
	case r.HasPyPI && r.HasConda:
		b.Both++
	case r.HasPyPI:
		b.PyPIOnly++
	case r.HasConda:
		b.CondaOnly++
	default:
		b.Neither++
	}
}
