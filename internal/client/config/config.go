package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/backup"
	"github.com/dmitrijs2005/eldercare/internal/client/repositories/area"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

// Config holds runtime settings for the ElderCare CLI.
//
// Units: VitalsInterval is a time.Duration (e.g., 3*time.Second);
// WebQuotaBytes counts bytes as the browser does (UTF-16 code units × 2).
type Config struct {
	Backend          string
	DataDir          string
	WebQuotaBytes    int64
	VitalsInterval   time.Duration
	LogLevel         string
	LogFormat        string
	RemindersEnabled bool
	SecureToken      bool

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = string(storage.BackendWeb)
	c.DataDir = defaultDataDir()
	c.WebQuotaBytes = area.DefaultQuota
	c.VitalsInterval = 3 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.RemindersEnabled = true
	c.SecureToken = false
	c.S3Region = "us-east-1"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "eldercare")
	}
	return ".eldercare"
}

// Validate reports settings no component could work with.
func (c *Config) Validate() error {
	if _, err := storage.ParseBackend(c.Backend); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.VitalsInterval <= 0 {
		return fmt.Errorf("vitals interval must be positive, got %s", c.VitalsInterval)
	}
	if c.WebQuotaBytes < 0 {
		return fmt.Errorf("web quota must not be negative, got %d", c.WebQuotaBytes)
	}
	return nil
}

// StorageOptions maps the config onto storage.Open options.
func (c *Config) StorageOptions() storage.Options {
	b, _ := storage.ParseBackend(c.Backend)
	return storage.Options{
		Backend:  b,
		DataDir:  c.DataDir,
		WebQuota: c.WebQuotaBytes,
	}
}

func (c *Config) S3() backup.S3Config {
	return backup.S3Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if -c/-config is given) and command-line flags. Later
// sources take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
