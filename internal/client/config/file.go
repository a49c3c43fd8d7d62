package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/flagx"
	"github.com/dmitrijs2005/eldercare/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so files can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type fileConfig struct {
	Backend          string         `json:"backend" yaml:"backend"`
	DataDir          string         `json:"data_dir" yaml:"data_dir"`
	WebQuotaBytes    int64          `json:"web_quota_bytes" yaml:"web_quota_bytes"`
	VitalsInterval   timex.Duration `json:"vitals_interval" yaml:"vitals_interval"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
	LogFormat        string         `json:"log_format" yaml:"log_format"`
	RemindersEnabled bool           `json:"reminders_enabled" yaml:"reminders_enabled"`
	SecureToken      bool           `json:"secure_token" yaml:"secure_token"`

	S3Endpoint  string `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3Region    string `json:"s3_region" yaml:"s3_region"`
	S3Bucket    string `json:"s3_bucket" yaml:"s3_bucket"`
	S3AccessKey string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key" yaml:"s3_secret_key"`
}

// parseFile overlays cfg with the file named by -c or -config. Keys missing
// from the file keep their current value. .yaml and .yml files are read as
// YAML, anything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := toFile(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fromFile(cfg, fc)
	return nil
}

func toFile(c *Config) fileConfig {
	return fileConfig{
		Backend:          c.Backend,
		DataDir:          c.DataDir,
		WebQuotaBytes:    c.WebQuotaBytes,
		VitalsInterval:   timex.Duration{Duration: c.VitalsInterval},
		LogLevel:         c.LogLevel,
		LogFormat:        c.LogFormat,
		RemindersEnabled: c.RemindersEnabled,
		SecureToken:      c.SecureToken,
		S3Endpoint:       c.S3Endpoint,
		S3Region:         c.S3Region,
		S3Bucket:         c.S3Bucket,
		S3AccessKey:      c.S3AccessKey,
		S3SecretKey:      c.S3SecretKey,
	}
}

func fromFile(c *Config, fc fileConfig) {
	c.Backend = fc.Backend
	c.DataDir = fc.DataDir
	c.WebQuotaBytes = fc.WebQuotaBytes
	c.VitalsInterval = time.Duration(fc.VitalsInterval.Duration)
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
	c.RemindersEnabled = fc.RemindersEnabled
	c.SecureToken = fc.SecureToken
	c.S3Endpoint = fc.S3Endpoint
	c.S3Region = fc.S3Region
	c.S3Bucket = fc.S3Bucket
	c.S3AccessKey = fc.S3AccessKey
	c.S3SecretKey = fc.S3SecretKey
}
