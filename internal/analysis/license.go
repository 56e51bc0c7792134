package analysis

import (
	"strings"

	"github.com/ralt/pluginstats/internal/models"
)

// Classify maps a free text license to a category. Rules are checked in
// order and the first match wins. The "cc" rule matches anywhere in the
// text, so e.g. "Accessible Use License" counts as Creative Commons.
func Classify(raw string) models.LicenseCategory {
	if strings.TrimSpace(raw) == "" {
		return models.LicenseNone
	}

	l := strings.ToLower(raw)
	switch {
	case strings.Contains(l, "mit"):
		return models.LicenseMIT
	case strings.Contains(l, "bsd"):
		switch {
		case strings.Contains(l, "3"):
			return models.LicenseBSD3
		case strings.Contains(l, "2"):
			return models.LicenseBSD2
		default:
			return models.LicenseBSDUnspecified
		}
	case strings.Contains(l, "apache"):
		return models.LicenseApache
	case strings.Contains(l, "gpl"):
		if strings.Contains(l, "lgpl") {
			return models.LicenseLGPL
		}
		return models.LicenseGPL
	case strings.Contains(l, "cc"), strings.Contains(l, "creative commons"):
		return models.LicenseCreativeCommons
	default:
		return models.LicenseOther
	}
}
