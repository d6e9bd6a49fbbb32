package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/logger"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "cabinet.yaml"

// Config represents the cabinet configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Settings SettingsConfig `yaml:"settings"`
	Branding BrandingConfig `yaml:"branding"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig contains the hub's listen settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// SettingsConfig points at the settings REST API
type SettingsConfig struct {
	BaseURL string        `yaml:"base_url,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// BrandingConfig tunes the branding store and stylesheet
type BrandingConfig struct {
	CacheTTL time.Duration   `yaml:"cache_ttl"`
	StyleID  string          `yaml:"style_id"`
	Defaults branding.Colors `yaml:"defaults"`
}

// RedisConfig contains Redis settings
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	DB      int    `yaml:"db"`
	Key     string `yaml:"key"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Settings: SettingsConfig{
			Timeout: 10 * time.Second,
		},
		Branding: BrandingConfig{
			CacheTTL: branding.DefaultCacheTTL,
			StyleID:  branding.StyleID,
			Defaults: branding.DefaultColors,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  "cabinet:settings:branding",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and parses a cabinet.yaml file
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file is missing.
// Environment overrides are applied in both cases.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(".", FileName)
	}

	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Debug("no config at %s, using defaults", path)
		cfg = Default()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from CABINET_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CABINET_SETTINGS_URL"); v != "" {
		c.Settings.BaseURL = v
	}
	if v := os.Getenv("CABINET_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("CABINET_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CABINET_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CABINET_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CABINET_LOG_JSON"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CABINET_LOG_JSON %q: %w", v, err)
		}
		c.Log.JSON = enabled
	}
	return nil
}

// Save writes the config to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Settings.BaseURL != "" && !strings.HasPrefix(c.Settings.BaseURL, "http://") && !strings.HasPrefix(c.Settings.BaseURL, "https://") {
		return fmt.Errorf("settings.base_url must be an http(s) URL")
	}

	if c.Settings.Timeout <= 0 {
		return fmt.Errorf("settings.timeout must be positive")
	}

	if c.Branding.CacheTTL <= 0 {
		return fmt.Errorf("branding.cache_ttl must be positive")
	}

	if c.Branding.StyleID == "" {
		return fmt.Errorf("branding.style_id is required")
	}

	if err := c.Branding.Defaults.Validate(); err != nil {
		return fmt.Errorf("branding.defaults.%w", err)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	return nil
}
