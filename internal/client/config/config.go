package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the contact directory CLI.
//
// Fields:
//   - ServerURL: base URL of the directory backend.
//   - RequestTimeout: upper bound for every HTTP request.
//   - SearchDebounce: quiet period before a search term is sent.
//   - DownloadDir: where pictures and exports are written.
//   - LogLevel / LogFormat: zap logger settings (stderr).
//   - PictureCacheSize: number of downloaded pictures kept in memory.
//   - Export: optional S3 target for "export s3".
type Config struct {
	ServerURL        string
	RequestTimeout   time.Duration
	SearchDebounce   time.Duration
	DownloadDir      string
	LogLevel         string
	LogFormat        string
	PictureCacheSize int
	Export           S3Config
}

// S3Config describes an S3-compatible bucket. Empty credentials mean the
// default AWS credential chain.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Enabled reports whether a bucket was configured.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.SearchDebounce = 350 * time.Millisecond
	c.DownloadDir = "download"
	c.LogLevel = "info"
	c.LogFormat = "console"
	c.PictureCacheSize = 64
	c.Export = S3Config{Region: "us-east-1", Prefix: "exports/"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ServerURL == "":
		return fmt.Errorf("server url must not be empty")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	case c.SearchDebounce < 0:
		return fmt.Errorf("search debounce must not be negative, got %s", c.SearchDebounce)
	case c.PictureCacheSize <= 0:
		return fmt.Errorf("picture cache size must be positive, got %d", c.PictureCacheSize)
	}
	return nil
}
