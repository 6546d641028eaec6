package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	EnvExtractorBaseURL = "EMEND_EXTRACTOR_BASE_URL"
	EnvExtractorTimeout = "EMEND_EXTRACTOR_TIMEOUT"
)

// ExtractorConfig holds connection parameters for the external
// content-extraction service.
type ExtractorConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ExtractorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExtractorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ExtractorConfig) Merge(overlay *ExtractorConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ExtractorConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
}

func (c *ExtractorConfig) loadEnv() {
	if v := os.Getenv(EnvExtractorBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvExtractorTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ExtractorConfig) validate() error {
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
