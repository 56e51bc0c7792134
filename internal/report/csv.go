package report

import (
	"encoding/csv"
	"io"

	"github.com/ralt/pluginstats/internal/analysis"
)

// WriteGitHubCSV writes name,github_url rows, one per plugin
func WriteGitHubCSV(w io.Writer, repos []analysis.GitHubRepo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "github_url"}); err != nil {
		return err
	}
	for _, r := range repos {
		if err := cw.Write([]string{r.Name, r.URL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
