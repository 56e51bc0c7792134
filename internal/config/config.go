// Package config assembles the run configuration from defaults, an optional
// YAML file, PLUGINSTATS_ environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ralt/pluginstats/internal/analysis"
	"github.com/ralt/pluginstats/internal/feed"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PLUGINSTATS"

// ConfigName is the config file searched for without --config
const ConfigName = "pluginstats"

// DotEnvFiles are loaded before anything else when present
var DotEnvFiles = []string{".env.local", ".env"}

var defaults = models.AnalysisConfig{
	DataDir:        "data",
	OutputDir:      "reports",
	ClassifiersURL: feed.DefaultClassifiersURL,
	ExtendedURL:    feed.DefaultExtendedURL,
	HTTPTimeout:    30 * time.Second,
	StaleDays:      analysis.DefaultStaleDays,
	Charts:         true,
}

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"data-dir":      "data_dir",
	"output-dir":    "output_dir",
	"force-refresh": "force_refresh",
	"days":          "stale_days",
	"archive":       "archive",
}

// LoadDotEnv loads the given .env files, skipping missing ones. Variables
// already in the environment win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		ok, err := utils.FileExists(f)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration. configFile, when set, must exist;
// otherwise pluginstats.yaml is looked up in the working directory and
// $HOME. Flags present in flags and changed on the command line override
// everything else.
func Load(configFile string, flags *pflag.FlagSet) (*models.AnalysisConfig, error) {
	v := viper.New()

	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("classifiers_url", defaults.ClassifiersURL)
	v.SetDefault("extended_url", defaults.ExtendedURL)
	v.SetDefault("http_timeout", defaults.HTTPTimeout)
	v.SetDefault("force_refresh", false)
	v.SetDefault("archive", utils.CompressionNone)
	v.SetDefault("stale_days", defaults.StaleDays)
	v.SetDefault("charts", defaults.Charts)
	v.SetDefault("gpg_key", "")
	v.SetDefault("gpg_passphrase", "")
	v.SetDefault("publish.endpoint", "")
	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "")
	v.SetDefault("publish.access_key", "")
	v.SetDefault("publish.secret_key", "")
	v.SetDefault("publish.use_ssl", true)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, models.NewError(models.ErrInvalidConfig, configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, models.NewError(models.ErrInvalidConfig, name, err)
			}
		}
		if f := flags.Lookup("no-charts"); f != nil && f.Changed {
			v.Set("charts", false)
		}
	}

	var cfg models.AnalysisConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, models.NewError(models.ErrInvalidConfig, v.ConfigFileUsed(), fmt.Errorf("error unmarshaling config: %w", err))
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations a run cannot work with
func Validate(cfg *models.AnalysisConfig) error {
	var problems []string
	if strings.TrimSpace(cfg.DataDir) == "" {
		problems = append(problems, "data_dir is empty")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		problems = append(problems, "output_dir is empty")
	}
	if cfg.StaleDays <= 0 {
		problems = append(problems, fmt.Sprintf("stale_days must be positive, got %d", cfg.StaleDays))
	}
	if cfg.HTTPTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("http_timeout must be positive, got %s", cfg.HTTPTimeout))
	}
	if !utils.ValidCompression(cfg.Archive) {
		problems = append(problems, fmt.Sprintf("unknown archive format %q", cfg.Archive))
	}
	if cfg.Publish.Enabled() && cfg.Publish.Endpoint == "" {
		problems = append(problems, "publish.bucket is set without publish.endpoint")
	}
	if cfg.GPGKeyPath != "" {
		if _, err := os.Stat(cfg.GPGKeyPath); err != nil {
			problems = append(problems, fmt.Sprintf("gpg_key: %v", err))
		}
	}

	if len(problems) > 0 {
		return models.NewError(models.ErrInvalidConfig, "", errors.New(strings.Join(problems, "; ")))
	}
	return nil
}
