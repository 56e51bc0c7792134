package cli

import (
	"bytes"
	"path/filepath"

	"github.com/ralt/pluginstats/internal/analysis"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/report"
	"github.com/ralt/pluginstats/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GitHubReposFile is written under the output directory
const GitHubReposFile = "github_repos.csv"

// NewGitHubReposCmd creates the github-repos command
func NewGitHubReposCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "github-repos",
		Short: "Export the GitHub repository of every plugin as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			feeds, err := env.newCache(cfg).Fetch(cmd.Context(), cfg.ForceRefresh)
			if err != nil {
				return err
			}

			repos := analysis.GitHubRepos(feeds.Extended)
			var buf bytes.Buffer
			if err := report.WriteGitHubCSV(&buf, repos); err != nil {
				return models.NewError(models.ErrRender, GitHubReposFile, err)
			}

			path := filepath.Join(cfg.OutputDir, GitHubReposFile)
			if err := utils.WriteFile(path, buf.Bytes(), 0644); err != nil {
				return models.NewError(models.ErrFileOp, path, err)
			}

			found := 0
			for _, r := range repos {
				if r.URL != "" {
					found++
				}
			}
			logrus.Infof("Wrote %d plugins (%d with a GitHub repository) to %s", len(repos), found, path)
			return nil
		},
	}
}
