package analysis

import (
	"regexp"
	"strings"

	"github.com/ralt/pluginstats/internal/models"
)

var githubPattern = regexp.MustCompile(`https://github\.com/([^/]+)/([^/#@\s,]+)`)

// GitHubRepo pairs a plugin with its GitHub repository URL, empty if unknown
type GitHubRepo struct {
	Name string
	URL  string
}

// GitHubURL returns the first GitHub repository referenced by the record's
// project URLs or, failing that, its home page.
func GitHubURL(r models.ExtendedRecord) string {
	candidates := r.URLs()
	if r.HomePage != "" {
		candidates = append(candidates[:len(candidates):len(candidates)], r.HomePage)
	}

	for _, entry := range candidates {
		if !strings.Contains(entry, "github.com") {
			continue
		}
		m := githubPattern.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		repo := strings.TrimRight(strings.TrimSuffix(m[2], ".git"), "/")
		return "https://github.com/" + m[1] + "/" + repo
	}
	return ""
}

// GitHubRepos resolves the repository of every extended record
func GitHubRepos(records []models.ExtendedRecord) []GitHubRepo {
	repos := make([]GitHubRepo, 0, len(records))
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = r.Key()
		}
		repos = append(repos, GitHubRepo{Name: name, URL: GitHubURL(r)})
	}
	return repos
}
