package analysis

import (
	"sort"

	"github.com/ralt/pluginstats/internal/models"
)

// LicenseCount is the number of records in one license category
type LicenseCount struct {
	Category models.LicenseCategory
	Count    int
}

// LicenseStats summarizes license usage
type LicenseStats struct {
	// Distribution is sorted by count, descending; ties keep first-seen order
	Distribution   []LicenseCount
	WithLicense    int
	WithoutLicense int
	// MostCommon is empty when there are no records
	MostCommon models.LicenseCategory
}

// Count returns the number of records classified as cat
func (s LicenseStats) Count(cat models.LicenseCategory) int {
	for _, lc := range s.Distribution {
		if lc.Category == cat {
			return lc.Count
		}
	}
	return 0
}

// Licenses classifies every record's license and counts the categories,
// normally over the active records
func Licenses(records []models.CombinedRecord) LicenseStats {
	var stats LicenseStats
	index := make(map[models.LicenseCategory]int)

	for _, r := range records {
		if r.HasLicense {
			stats.WithLicense++
		} else {
			stats.WithoutLicense++
		}

		cat := Classify(r.License)
		i, ok := index[cat]
		if !ok {
			i = len(stats.Distribution)
			index[cat] = i
			stats.Distribution = append(stats.Distribution, LicenseCount{Category: cat})
		}
		stats.Distribution[i].Count++
	}

	sort.SliceStable(stats.Distribution, func(i, j int) bool {
		return stats.Distribution[i].Count > stats.Distribution[j].Count
	})
	if len(stats.Distribution) > 0 {
		stats.MostCommon = stats.Distribution[0].Category
	}
	return stats
}
