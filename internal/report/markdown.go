package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ralt/pluginstats/internal/analysis"
)

// listLimit caps how many plugins each highlight listing shows
const listLimit = 5

// Render formats an analysis summary as a Markdown report
func Render(s *analysis.Summary, generated time.Time) string {
	d := s.Distribution
	v := s.Versions
	l := s.Licenses

	var b strings.Builder

	b.WriteString("\n# Napari Plugin Ecosystem Analysis Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))

	b.WriteString("## Overall Statistics\n")
	fmt.Fprintf(&b, "- Total plugins tracked: %s\n", comma(d.Total))
	fmt.Fprintf(&b, "- Active plugins: %s\n", comma(d.Active))
	fmt.Fprintf(&b, "- Withdrawn plugins: %s\n", comma(d.Withdrawn))
	fmt.Fprintf(&b, "- Deleted plugins: %s\n\n", comma(d.Deleted))

	b.WriteString("## Distribution Patterns\n")
	b.WriteString("### All Plugins\n")
	writeBuckets(&b, d.All)
	b.WriteString("\n### Active Plugins Only\n")
	writeBuckets(&b, d.ActiveOnly)

	b.WriteString("\n## Version Release Patterns\n")
	fmt.Fprintf(&b, "- Average PyPI versions per plugin: %s\n", decimal(v.AvgPyPI, 1, v.Plugins))
	fmt.Fprintf(&b, "- Median PyPI versions per plugin: %s\n", decimal(v.MedianPyPI, 0, v.Plugins))
	fmt.Fprintf(&b, "- Maximum PyPI versions: %s\n\n", comma(v.MaxPyPI))
	fmt.Fprintf(&b, "- Average conda versions per plugin: %s\n", decimal(v.AvgConda, 1, v.Plugins))
	fmt.Fprintf(&b, "- Median conda versions per plugin: %s\n", decimal(v.MedianConda, 0, v.Plugins))
	fmt.Fprintf(&b, "- Maximum conda versions: %s\n", comma(v.MaxConda))

	if len(v.MostPyPI) > 0 {
		b.WriteString("\n### Most PyPI Releases\n")
		for i, vc := range v.MostPyPI {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, vc.Name, comma(vc.Count))
		}
	}
	if len(v.MostConda) > 0 {
		b.WriteString("\n### Most Conda Releases\n")
		for i, vc := range v.MostConda {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, vc.Name, comma(vc.Count))
		}
	}

	mostCommon := string(l.MostCommon)
	if mostCommon == "" {
		mostCommon = "n/a"
	}
	b.WriteString("\n## License Analysis\n")
	fmt.Fprintf(&b, "- Plugins with licenses: %s\n", comma(l.WithLicense))
	fmt.Fprintf(&b, "- Plugins without licenses: %s\n", comma(l.WithoutLicense))
	fmt.Fprintf(&b, "- Most common license: %s\n\n", mostCommon)
	b.WriteString("### License Distribution:\n")
	for _, lc := range l.Distribution {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", lc.Category, comma(lc.Count), percent(lc.Count, d.Active))
	}

	b.WriteString("\n\n## Sustainability Insights\n")
	fmt.Fprintf(&b, "- Distribution coverage: %s of active plugins available on PyPI\n", percent(d.ActiveOnly.OnPyPI(), d.Active))
	fmt.Fprintf(&b, "- Conda-forge adoption: %s of active plugins available on conda-forge\n", percent(d.ActiveOnly.OnConda(), d.Active))
	fmt.Fprintf(&b, "- License compliance: %s of active plugins have specified licenses\n", percent(l.WithLicense, d.Active))

	writeHighlights(&b, s)

	b.WriteString(`
## Recommendations
1. Encourage conda-forge packaging for PyPI-only plugins to improve accessibility
2. Help unlicensed plugins adopt appropriate open source licenses
3. Monitor plugins with low version counts for potential maintenance issues
4. Focus sustainability efforts on plugins with high version counts (active development)
`)
	return b.String()
}

func writeBuckets(b *strings.Builder, p analysis.PlatformBuckets) {
	fmt.Fprintf(b, "- PyPI only: %s\n", comma(p.PyPIOnly))
	fmt.Fprintf(b, "- Conda-forge only: %s\n", comma(p.CondaOnly))
	fmt.Fprintf(b, "- Both PyPI and conda-forge: %s\n", comma(p.Both))
	fmt.Fprintf(b, "- Neither: %s\n", comma(p.Neither))
}

func writeHighlights(b *strings.Builder, s *analysis.Summary) {
	h := s.Highlights
	b.WriteString("\n## Highlights\n")
	fmt.Fprintf(b, "- PyPI-only plugins (conda-forge candidates): %s\n", comma(len(h.PyPIOnly)))
	fmt.Fprintf(b, "- Active plugins needing licenses: %s\n", comma(len(h.Unlicensed)))
	fmt.Fprintf(b, "- Potentially stale plugins (few releases, no homepage or project URLs): %s\n", comma(len(h.PotentiallyStale)))
	fmt.Fprintf(b, "- Well-maintained plugins: %s\n", comma(len(h.WellMaintained)))
	if s.StaleDays > 0 {
		fmt.Fprintf(b, "- Plugins without a release in %s days: %s\n", comma(s.StaleDays), comma(len(h.Stale)))
	}

	if len(h.WellMaintained) > 0 {
		b.WriteString("\n### Well-Maintained Examples\n")
		for _, r := range head(h.WellMaintained) {
			fmt.Fprintf(b, "- %s: %s versions, on conda-forge\n", r.Name, comma(r.NumPyPIVersions))
		}
	}
	if len(h.Unlicensed) > 0 {
		b.WriteString("\n### Unlicensed Examples\n")
		for _, r := range head(h.Unlicensed) {
			fmt.Fprintf(b, "- %s\n", r.Name)
		}
	}
}

func head[T any](xs []T) []T {
	if len(xs) > listLimit {
		return xs[:listLimit]
	}
	return xs
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

// percent guards against an empty denominator
func percent(n, total int) string {
	if total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

// decimal prints n/a for averages over an empty set
func decimal(x float64, prec, samples int) string {
	if samples == 0 || math.IsNaN(x) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, x)
}
