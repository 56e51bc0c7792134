package models

// Status is the lifecycle category of a registry entry
type Status string

const (
	StatusActive    Status = "active"
	StatusWithdrawn Status = "withdrawn"
	StatusDeleted   Status = "deleted"
)

// Statuses lists every status in the order the merger walks them.
var Statuses = []Status{StatusActive, StatusWithdrawn, StatusDeleted}

// PluginVersions is one entry of a status mapping in the classifiers feed
type PluginVersions struct {
	Name     string
	Versions []string
}

// ClassifierFeed maps a status to its plugins, in feed document order.
type ClassifierFeed map[Status][]PluginVersions

// Len returns the number of (plugin, status) pairs in the feed.
func (f ClassifierFeed) Len() int {
	n := 0
	for _, st := range Statuses {
		n += len(f[st])
	}
	return n
}

// ExtendedRecord represents one entry of the extended summary feed
type ExtendedRecord struct {
	NormalizedName string   `json:"normalized_name"`
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	Summary        string   `json:"summary"`
	Author         string   `json:"author"`
	License        string   `json:"license"`
	HomePage       string   `json:"home_page"`
	Version        string   `json:"version"`
	PyPIVersions   []string `json:"pypi_versions"`
	CondaVersions  []string `json:"conda_versions"`
	ProjectURL     []string `json:"project_url"`
	ProjectURLs    []string `json:"project_urls,omitempty"`
	LastRelease    string   `json:"last_release,omitempty"`
}

// Key returns the name used to join the record with the classifiers feed
func (r ExtendedRecord) Key() string {
	if r.NormalizedName != "" {
		return r.NormalizedName
	}
	return r.Name
}

// URLs returns the project URLs, whichever field the feed populated.
func (r ExtendedRecord) URLs() []string {
	if len(r.ProjectURL) > 0 {
		return r.ProjectURL
	}
	return r.ProjectURLs
}

// Feeds holds both parsed feeds of one analysis run
type Feeds struct {
	Classifiers ClassifierFeed
	Extended    []ExtendedRecord
}

// CombinedRecord is one (plugin, status) row of the merged dataset
type CombinedRecord struct {
	Name               string
	DisplayName        string
	Category           Status
	Summary            string
	Author             string
	License            string
	HomePage           string
	CurrentVersion     string
	ClassifierVersions []string
	PyPIVersions       []string
	CondaVersions      []string
	ProjectURLs        []string
	LastRelease        string

	NumClassifierVersions int
	NumPyPIVersions       int
	NumCondaVersions      int
	HasPyPI               bool
	HasConda              bool
	HasLicense            bool
	HasHomepage           bool
	HasProjectURLs        bool
}

// LicenseCategory is a normalized license label
type LicenseCategory string

const (
	LicenseNone            LicenseCategory = "None/Unspecified"
	LicenseMIT             LicenseCategory = "MIT"
	LicenseBSD3            LicenseCategory = "BSD-3-Clause"
	LicenseBSD2            LicenseCategory = "BSD-2-Clause"
	LicenseBSDUnspecified  LicenseCategory = "BSD (Unspecified)"
	LicenseApache          LicenseCategory = "Apache"
	LicenseLGPL            LicenseCategory = "LGPL"
	LicenseGPL             LicenseCategory = "GPL"
	LicenseCreativeCommons LicenseCategory = "Creative Commons"
	LicenseOther           LicenseCategory = "Other"
)
