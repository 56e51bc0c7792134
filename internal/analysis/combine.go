// Package analysis merges the registry feeds into one record set and
// summarizes it. Every function here is pure: inputs are never modified.
package analysis

import (
	"slices"
	"strings"

	"github.com/ralt/pluginstats/internal/models"
)

// Combine joins the classifiers feed with the extended summary on plugin
// name. It emits one record per (plugin, status) pair, statuses in the order
// active, withdrawn, deleted and plugins in feed order. Plugins without an
// extended record get empty metadata.
func Combine(feed models.ClassifierFeed, extended []models.ExtendedRecord) []models.CombinedRecord {
	// Last record wins on duplicate names
	lookup := make(map[string]models.ExtendedRecord, len(extended))
	for _, r := range extended {
		lookup[r.Key()] = r
	}

	records := make([]models.CombinedRecord, 0, feed.Len())
	for _, status := range models.Statuses {
		for _, plugin := range feed[status] {
			records = append(records, combineRecord(status, plugin, lookup[plugin.Name]))
		}
	}
	return records
}

func combineRecord(status models.Status, plugin models.PluginVersions, ext models.ExtendedRecord) models.CombinedRecord {
	displayName := ext.DisplayName
	if displayName == "" {
		displayName = plugin.Name
	}

	r := models.CombinedRecord{
		Name:               plugin.Name,
		DisplayName:        displayName,
		Category:           status,
		Summary:            ext.Summary,
		Author:             ext.Author,
		License:            ext.License,
		HomePage:           ext.HomePage,
		CurrentVersion:     ext.Version,
		ClassifierVersions: slices.Clone(plugin.Versions),
		PyPIVersions:       slices.Clone(ext.PyPIVersions),
		CondaVersions:      slices.Clone(ext.CondaVersions),
		ProjectURLs:        slices.Clone(ext.URLs()),
		LastRelease:        ext.LastRelease,
	}

	r.NumClassifierVersions = len(r.ClassifierVersions)
	r.NumPyPIVersions = len(r.PyPIVersions)
	r.NumCondaVersions = len(r.CondaVersions)
	r.HasPyPI = r.NumPyPIVersions > 0
	r.HasConda = r.NumCondaVersions > 0
	r.HasLicense = strings.TrimSpace(r.License) != ""
	r.HasHomepage = r.HomePage != ""
	r.HasProjectURLs = len(r.ProjectURLs) > 0
	return r
}

// ByStatus returns the records in the given category, in input order
func ByStatus(records []models.CombinedRecord, status models.Status) []models.CombinedRecord {
	var out []models.CombinedRecord
	for _, r := range records {
		if r.Category == status {
			out = append(out, r)
		}
	}
	return out
}

// Active returns the active records
func Active(records []models.CombinedRecord) []models.CombinedRecord {
	return ByStatus(records, models.StatusActive)
}
