package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"MacroLens/internal/collector"
	"MacroLens/internal/model"
	"MacroLens/internal/scheduler"
)

// Config holds all application configuration.
type Config struct {
	FRED struct {
		BaseURL     string `yaml:"base_url"`
		APIKey      string `yaml:"api_key"`
		Mock        bool   `yaml:"mock"`
		WindowYears int    `yaml:"window_years"`
	} `yaml:"fred"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.FRED.APIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		cfg.FRED.BaseURL = v
	}
	if v := os.Getenv("FRED_MOCK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FRED.Mock = b
		}
	}
	if v := os.Getenv("FRED_WINDOW_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FRED.WindowYears = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	// Defaults
	if cfg.FRED.BaseURL == "" {
		cfg.FRED.BaseURL = collector.DefaultBaseURL
	}
	if cfg.FRED.WindowYears == 0 {
		cfg.FRED.WindowYears = model.DefaultWindowYears
	}

	return cfg, nil
}

// Validate checks field shapes. A missing API key is not an error: the
// dashboard degrades to empty series.
func (c *Config) Validate() error {
	if c.FRED.WindowYears < 0 {
		return fmt.Errorf("fred.window_years must not be negative")
	}
	if !strings.HasPrefix(c.FRED.BaseURL, "http://") && !strings.HasPrefix(c.FRED.BaseURL, "https://") {
		return fmt.Errorf("fred.base_url must be an http(s) URL, got %q", c.FRED.BaseURL)
	}
	if c.Schedule.RefreshCron != "" {
		if err := scheduler.ValidateSpec(c.Schedule.RefreshCron); err != nil {
			return fmt.Errorf("schedule.refresh_cron: %w", err)
		}
	}
	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return fmt.Errorf("server.addr: %w", err)
		}
	}
	return nil
}
