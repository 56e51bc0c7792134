package models

import "time"

// AnalysisConfig contains configuration for an analysis run
type AnalysisConfig struct {
	// Input/Output
	DataDir   string `mapstructure:"data_dir"`
	OutputDir string `mapstructure:"output_dir"`

	// Feed retrieval
	ClassifiersURL string        `mapstructure:"classifiers_url"`
	ExtendedURL    string        `mapstructure:"extended_url"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	ForceRefresh   bool          `mapstructure:"force_refresh"`
	Archive        string        `mapstructure:"archive"` // Snapshot compression: gzip, zstd, xz or empty

	// Analysis
	StaleDays int  `mapstructure:"stale_days"`
	Charts    bool `mapstructure:"charts"`

	// Signing
	GPGKeyPath    string `mapstructure:"gpg_key"`
	GPGPassphrase string `mapstructure:"gpg_passphrase"`

	Publish PublishConfig `mapstructure:"publish"`
}

// PublishConfig describes the S3-compatible bucket reports are uploaded to
type PublishConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether publishing was requested
func (p PublishConfig) Enabled() bool {
	return p.Bucket != ""
}
