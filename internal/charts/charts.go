// Package charts draws PNG charts of an analysis summary.
package charts

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ralt/pluginstats/internal/analysis"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/utils"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Chart file names
const (
	CategoriesChart   = "plugin_categories.png"
	DistributionChart = "distribution_patterns.png"
	VersionChart      = "version_distribution.png"
	LicenseChart      = "license_distribution.png"
	ScatterChart      = "version_scatter.png"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 7 * vg.Inch
	histBins    = 30
	maxLicenses = 10
)

// ErrNoActivePlugins is returned when there is nothing to plot
var ErrNoActivePlugins = errors.New("no active plugins to chart")

// Renderer writes charts into a directory
type Renderer struct {
	OutputDir string
}

// NewRenderer creates a chart renderer
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{OutputDir: outputDir}
}

// Render draws every chart and returns the written paths. It stops at the
// first failure.
func (r *Renderer) Render(s *analysis.Summary) ([]string, error) {
	if s.Distribution.Active == 0 {
		return nil, ErrNoActivePlugins
	}
	if err := utils.EnsureDir(r.OutputDir); err != nil {
		return nil, err
	}

	active := analysis.Active(s.Records)
	steps := []struct {
		file string
		draw func() (*plot.Plot, error)
	}{
		{CategoriesChart, func() (*plot.Plot, error) { return categoriesPlot(s.Distribution) }},
		{DistributionChart, func() (*plot.Plot, error) { return distributionPlot(s.Distribution.ActiveOnly) }},
		{VersionChart, func() (*plot.Plot, error) { return versionPlot(active) }},
		{LicenseChart, func() (*plot.Plot, error) { return licensePlot(s.Licenses) }},
		{ScatterChart, func() (*plot.Plot, error) { return scatterPlot(active) }},
	}

	var paths []string
	for _, step := range steps {
		logrus.Debugf("Drawing %s", step.file)
		p, err := step.draw()
		if err != nil {
			return paths, fmt.Errorf("draw %s: %w", step.file, err)
		}
		path := filepath.Join(r.OutputDir, step.file)
		if err := p.Save(chartWidth, chartHeight, path); err != nil {
			return paths, fmt.Errorf("save %s: %w", step.file, err)
		}
		paths = append(paths, path)
	}

	logrus.Infof("Saved %d charts to %s", len(paths), r.OutputDir)
	return paths, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

func barPlot(title, x, y string, labels []string, values plotter.Values, horizontal bool) (*plot.Plot, error) {
	p := newPlot(title, x, y)
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = horizontal
	p.Add(bars)
	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return p, nil
}

func categoriesPlot(d analysis.DistributionStats) (*plot.Plot, error) {
	labels := []string{string(models.StatusActive), string(models.StatusWithdrawn), string(models.StatusDeleted)}
	values := plotter.Values{float64(d.Active), float64(d.Withdrawn), float64(d.Deleted)}
	return barPlot("Napari Plugin Categories", "Status", "Number of Plugins", labels, values, false)
}

func distributionPlot(b analysis.PlatformBuckets) (*plot.Plot, error) {
	labels := []string{"Both PyPI & Conda", "PyPI Only", "Conda Only", "Neither"}
	values := plotter.Values{float64(b.Both), float64(b.PyPIOnly), float64(b.CondaOnly), float64(b.Neither)}
	return barPlot("Active Plugin Distribution Patterns", "Distribution Platform", "Number of Plugins", labels, values, false)
}

func versionPlot(active []models.CombinedRecord) (*plot.Plot, error) {
	p := newPlot("Version Count Distribution by Platform", "Number of Versions", "Number of Plugins")

	pypi := make(plotter.Values, len(active))
	conda := make(plotter.Values, len(active))
	for i, r := range active {
		pypi[i] = float64(r.NumPyPIVersions)
		conda[i] = float64(r.NumCondaVersions)
	}

	for i, series := range []struct {
		name   string
		values plotter.Values
	}{{"PyPI", pypi}, {"Conda", conda}} {
		h, err := plotter.NewHist(series.values, histBins)
		if err != nil {
			return nil, err
		}
		h.FillColor = plotutil.Color(i)
		h.LineStyle.Width = vg.Length(0)
		p.Add(h)
		p.Legend.Add(series.name, h)
	}
	return p, nil
}

func licensePlot(l analysis.LicenseStats) (*plot.Plot, error) {
	top := l.Distribution
	if len(top) > maxLicenses {
		top = top[:maxLicenses]
	}

	labels := make([]string, len(top))
	values := make(plotter.Values, len(top))
	for i, lc := range top {
		labels[i] = string(lc.Category)
		values[i] = float64(lc.Count)
	}
	return barPlot("License Distribution (Active Plugins)", "Number of Plugins", "License Type", labels, values, true)
}

func scatterPlot(active []models.CombinedRecord) (*plot.Plot, error) {
	p := newPlot("PyPI vs Conda Version Counts", "PyPI Versions", "Conda Versions")

	var xys plotter.XYs
	for _, r := range active {
		if r.NumPyPIVersions == 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(r.NumPyPIVersions), Y: float64(r.NumCondaVersions)})
	}
	if len(xys) == 0 {
		return p, nil
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = plotutil.Color(2)
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	return p, nil
}
