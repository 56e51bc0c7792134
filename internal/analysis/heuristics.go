package analysis

import (
	"sort"

	"github.com/ralt/pluginstats/internal/models"
)

func filter(records []models.CombinedRecord, keep func(models.CombinedRecord) bool) []models.CombinedRecord {
	var out []models.CombinedRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// PyPIOnly returns the records published on PyPI but not on conda-forge
func PyPIOnly(records []models.CombinedRecord) []models.CombinedRecord {
	return filter(records, func(r models.CombinedRecord) bool {
		return r.HasPyPI && !r.HasConda
	})
}

// Unlicensed returns the records without a license
func Unlicensed(records []models.CombinedRecord) []models.CombinedRecord {
	return filter(records, func(r models.CombinedRecord) bool {
		return !r.HasLicense
	})
}

// PotentiallyStale returns records with at most two PyPI releases and
// neither a homepage nor project URLs
func PotentiallyStale(records []models.CombinedRecord) []models.CombinedRecord {
	return filter(records, func(r models.CombinedRecord) bool {
		return r.NumPyPIVersions <= 2 && !r.HasHomepage && !r.HasProjectURLs
	})
}

// WellMaintained returns records with at least five PyPI releases, a
// license, a homepage and a conda-forge package, most releases first
func WellMaintained(records []models.CombinedRecord) []models.CombinedRecord {
	out := filter(records, func(r models.CombinedRecord) bool {
		return r.NumPyPIVersions >= 5 && r.HasLicense && r.HasHomepage && r.HasConda
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NumPyPIVersions > out[j].NumPyPIVersions
	})
	return out
}
