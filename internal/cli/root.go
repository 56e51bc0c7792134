package cli

import (
	"time"

	"github.com/ralt/pluginstats/internal/config"
	"github.com/ralt/pluginstats/internal/feed"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Env holds the process dependencies commands run against
type Env struct {
	// Fetcher overrides the HTTP client built from the configuration
	Fetcher feed.HTTPFetcher
	Now     func() time.Time
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) newCache(cfg *models.AnalysisConfig) *feed.Cache {
	fetcher := e.Fetcher
	if fetcher == nil {
		fetcher = feed.NewRealHTTPFetcher(feed.NewHTTPClient(cfg.HTTPTimeout))
	}
	return feed.NewCache(feed.Options{
		DataDir:        cfg.DataDir,
		ClassifiersURL: cfg.ClassifiersURL,
		ExtendedURL:    cfg.ExtendedURL,
		Archive:        cfg.Archive,
		Fetcher:        fetcher,
		Now:            e.now,
	})
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(Env{})
}

// NewRootCmdWithEnv creates the root command with explicit dependencies
func NewRootCmdWithEnv(env Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pluginstats",
		Short: "Analyze the napari plugin ecosystem",
		Long: `Pluginstats downloads the npe2api plugin feeds, merges them and
produces an ecosystem report covering:
  - plugin status counts (active, withdrawn, deleted)
  - PyPI and conda-forge distribution
  - release counts per platform
  - license usage
  - plugins without recent releases`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default pluginstats.yaml in . or $HOME)")
	rootCmd.PersistentFlags().String("data-dir", "data", "Directory holding the cached feeds")
	rootCmd.PersistentFlags().String("output-dir", "reports", "Directory reports and charts are written to")

	rootCmd.AddCommand(NewAnalyzeCmd(env))
	rootCmd.AddCommand(NewFetchCmd(env))
	rootCmd.AddCommand(NewStaleCmd(env))
	rootCmd.AddCommand(NewGitHubReposCmd(env))

	return rootCmd
}

// loadConfig resolves the configuration for cmd
func loadConfig(cmd *cobra.Command) (*models.AnalysisConfig, error) {
	if err := config.LoadDotEnv(config.DotEnvFiles...); err != nil {
		return nil, models.NewError(models.ErrInvalidConfig, ".env", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Configuration: data_dir=%s output_dir=%s stale_days=%d archive=%q",
		cfg.DataDir, cfg.OutputDir, cfg.StaleDays, cfg.Archive)
	return cfg, nil
}
