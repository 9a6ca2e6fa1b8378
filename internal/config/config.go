package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Backend drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// Archive kinds
const (
	ArchiveFS = "fs"
	ArchiveS3 = "s3"
)

// Config is the checkin configuration stored in .checkin/config.json.
type Config struct {
	Version   string        `json:"version"`
	Backend   BackendConfig `json:"backend"`
	Archive   ArchiveConfig `json:"archive"`
	Metrics   MetricsConfig `json:"metrics"`
	LogLevel  string        `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string        `json:"log_format,omitempty"` // text or json
	Locale    string        `json:"locale,omitempty"`     // BCP 47 tag for printed numbers
}

// BackendConfig selects the relational backend.
type BackendConfig struct {
	Driver string `json:"driver"`        // sqlite3, pgx or mysql
	DSN    string `json:"dsn,omitempty"` // empty means the default sqlite file
}

// ArchiveConfig selects where printed reports and exports are archived.
type ArchiveConfig struct {
	Kind      string `json:"kind"` // fs or s3
	Dir       string `json:"dir,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"` // MinIO or other S3-compatible endpoint
	Prefix    string `json:"prefix,omitempty"`
	PathStyle bool   `json:"path_style,omitempty"`
}

// MetricsConfig controls submission outcome metrics.
type MetricsConfig struct {
	// TextfilePath, when set, receives Prometheus text-format counters after
	// every submission (node_exporter textfile collector).
	TextfilePath string `json:"textfile_path,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: "1",
		Backend: BackendConfig{Driver: DriverSQLite},
		Archive: ArchiveConfig{Kind: ArchiveFS},
	}
}

// LoadConfig reads .checkin/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".checkin", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Resolve loads the config in dir if present, falls back to defaults when it
// is missing, then applies CHECKIN_* environment overrides and validates.
func Resolve(dir string, getenv func(string) string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".checkin")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .checkin dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from CHECKIN_* variables. Unset variables leave
// the field alone.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	str("CHECKIN_DB_DRIVER", &c.Backend.Driver)
	str("CHECKIN_DB_DSN", &c.Backend.DSN)
	str("CHECKIN_ARCHIVE_KIND", &c.Archive.Kind)
	str("CHECKIN_ARCHIVE_DIR", &c.Archive.Dir)
	str("CHECKIN_S3_BUCKET", &c.Archive.Bucket)
	str("CHECKIN_S3_REGION", &c.Archive.Region)
	str("CHECKIN_S3_ENDPOINT", &c.Archive.Endpoint)
	str("CHECKIN_S3_PREFIX", &c.Archive.Prefix)
	str("CHECKIN_METRICS_TEXTFILE", &c.Metrics.TextfilePath)
	str("CHECKIN_LOG_LEVEL", &c.LogLevel)
	str("CHECKIN_LOG_FORMAT", &c.LogFormat)
	str("CHECKIN_LOCALE", &c.Locale)

	if v := getenv("CHECKIN_S3_PATH_STYLE"); v != "" {
		c.Archive.PathStyle = strings.EqualFold(v, "true")
	}
}

// Validate checks that the selected drivers are known and complete.
func (c *Config) Validate() error {
	switch c.Backend.Driver {
	case DriverSQLite:
	case DriverPostgres, DriverMySQL:
		if c.Backend.DSN == "" {
			return fmt.Errorf("backend driver %s requires a dsn", c.Backend.Driver)
		}
	default:
		return fmt.Errorf("unknown backend driver %q (want %s, %s or %s)", c.Backend.Driver, DriverSQLite, DriverPostgres, DriverMySQL)
	}

	switch c.Archive.Kind {
	case ArchiveFS:
	case ArchiveS3:
		if c.Archive.Bucket == "" {
			return fmt.Errorf("s3 archive requires a bucket")
		}
	default:
		return fmt.Errorf("unknown archive kind %q (want %s or %s)", c.Archive.Kind, ArchiveFS, ArchiveS3)
	}

	return nil
}

// HomeDir returns ~/.checkin, where the default database and archive live.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".checkin"), nil
}

// SQLitePath returns the sqlite file to open: the DSN if set, else ~/.checkin/checkin.db.
func (c *Config) SQLitePath() (string, error) {
	if c.Backend.DSN != "" {
		return c.Backend.DSN, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "checkin.db"), nil
}

// ArchiveDir returns the filesystem archive root: Archive.Dir if set, else ~/.checkin/reports.
func (c *Config) ArchiveDir() (string, error) {
	if c.Archive.Dir != "" {
		return c.Archive.Dir, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reports"), nil
}
