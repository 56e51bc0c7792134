package analysis

import (
	"slices"
	"sort"

	"github.com/ralt/pluginstats/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TopN is how many plugins the version leaderboards keep
const TopN = 5

// VersionCount pairs a plugin name with a number of releases
type VersionCount struct {
	Name  string
	Count int
}

// VersionStats describes release counts across a set of records. All values
// are zero when Plugins is zero.
type VersionStats struct {
	Plugins int

	AvgPyPI    float64
	MedianPyPI float64
	MaxPyPI    int

	AvgConda    float64
	MedianConda float64
	MaxConda    int

	MostPyPI  []VersionCount
	MostConda []VersionCount
}

// Versions computes release statistics, normally over the active records
func Versions(records []models.CombinedRecord) VersionStats {
	stats := VersionStats{Plugins: len(records)}
	if len(records) == 0 {
		return stats
	}

	pypi := make([]float64, len(records))
	conda := make([]float64, len(records))
	for i, r := range records {
		pypi[i] = float64(r.NumPyPIVersions)
		conda[i] = float64(r.NumCondaVersions)
	}

	stats.AvgPyPI = stat.Mean(pypi, nil)
	stats.MedianPyPI = median(pypi)
	stats.MaxPyPI = int(floats.Max(pypi))
	stats.AvgConda = stat.Mean(conda, nil)
	stats.MedianConda = median(conda)
	stats.MaxConda = int(floats.Max(conda))

	stats.MostPyPI = topBy(records, func(r models.CombinedRecord) int { return r.NumPyPIVersions })
	stats.MostConda = topBy(records, func(r models.CombinedRecord) int { return r.NumCondaVersions })
	return stats
}

// median averages the two middle values of an even-length sample
func median(xs []float64) float64 {
	s := slices.Clone(xs)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// topBy returns the TopN records with the largest count; ties keep input order
func topBy(records []models.CombinedRecord, count func(models.CombinedRecord) int) []VersionCount {
	all := make([]VersionCount, len(records))
	for i, r := range records {
		all[i] = VersionCount{Name: r.Name, Count: count(r)}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Count > all[j].Count
	})
	if len(all) > TopN {
		all = all[:TopN]
	}
	return all
}
