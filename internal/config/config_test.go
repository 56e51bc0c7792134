package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pluginstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, 365, cfg.StaleDays)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.Charts)
	assert.False(t, cfg.ForceRefresh)
	assert.Empty(t, cfg.Archive)
	assert.False(t, cfg.Publish.Enabled())
	assert.Contains(t, cfg.ClassifiersURL, "classifiers.json")
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
data_dir: /var/lib/pluginstats
output_dir: /srv/reports
stale_days: 180
http_timeout: 5s
archive: zstd
publish:
  endpoint: s3.example.org
  bucket: napari
  prefix: weekly
`)
	t.Setenv("PLUGINSTATS_OUTPUT_DIR", "/tmp/env-reports")
	t.Setenv("PLUGINSTATS_PUBLISH_ACCESS_KEY", "AKIA")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("days", 365, "")
	flags.Bool("no-charts", false, "")
	require.NoError(t, flags.Parse([]string{"--days", "90", "--no-charts"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/pluginstats", cfg.DataDir)
	assert.Equal(t, "/tmp/env-reports", cfg.OutputDir)
	assert.Equal(t, 90, cfg.StaleDays)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "zstd", cfg.Archive)
	assert.False(t, cfg.Charts)
	assert.Equal(t, models.PublishConfig{
		Endpoint:  "s3.example.org",
		Bucket:    "napari",
		Prefix:    "weekly",
		AccessKey: "AKIA",
		UseSSL:    true,
	}, cfg.Publish)
}

func TestLoadUnchangedFlagKeepsConfig(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "stale_days: 30\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("days", 365, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.StaleDays)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrInvalidConfig))
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "stale_days: 0\narchive: bzip2\n")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "stale_days must be positive")
	assert.Contains(t, err.Error(), `unknown archive format "bzip2"`)
}

func TestValidate(t *testing.T) {
	valid := func() models.AnalysisConfig {
		return models.AnalysisConfig{DataDir: "data", OutputDir: "out", StaleDays: 365, HTTPTimeout: time.Second}
	}

	tests := []struct {
		name   string
		mutate func(*models.AnalysisConfig)
		errMsg string
	}{
		{"valid", func(*models.AnalysisConfig) {}, ""},
		{"empty data dir", func(c *models.AnalysisConfig) { c.DataDir = " " }, "data_dir is empty"},
		{"empty output dir", func(c *models.AnalysisConfig) { c.OutputDir = "" }, "output_dir is empty"},
		{"negative stale days", func(c *models.AnalysisConfig) { c.StaleDays = -1 }, "stale_days must be positive"},
		{"zero timeout", func(c *models.AnalysisConfig) { c.HTTPTimeout = 0 }, "http_timeout must be positive"},
		{"bucket without endpoint", func(c *models.AnalysisConfig) { c.Publish.Bucket = "b" }, "without publish.endpoint"},
		{"missing gpg key", func(c *models.AnalysisConfig) { c.GPGKeyPath = "/nonexistent/key.asc" }, "gpg_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("PLUGINSTATS_DOTENV_PROBE=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("PLUGINSTATS_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env.local"), env))
	assert.Equal(t, "from-file", os.Getenv("PLUGINSTATS_DOTENV_PROBE"))
}
