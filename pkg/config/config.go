package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Environment string `yaml:"environment"`

	RateLimitEnabled bool                       `yaml:"rate_limit_enabled"`
	RateLimitConfigs map[string]RateLimitConfig `yaml:"rate_limits"`

	CacheEnabled bool                   `yaml:"cache_enabled"`
	CacheConfigs map[string]CacheConfig `yaml:"caches"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// UnmarshalYAML accepts durations in Go notation ("30s", "1m").
func (c *RateLimitConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Requests int    `yaml:"requests"`
		Window   string `yaml:"window"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Requests = raw.Requests

	if raw.Window != "" {
		window, err := time.ParseDuration(raw.Window)

		if err != nil {
			return err
		}

		c.Window = window
	}

	return nil
}

type CacheConfig struct {
	TTL     time.Duration `yaml:"ttl"`
	Enabled bool          `yaml:"enabled"`
}

func (c *CacheConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TTL     string `yaml:"ttl"`
		Enabled bool   `yaml:"enabled"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Enabled = raw.Enabled

	if raw.TTL != "" {
		ttl, err := time.ParseDuration(raw.TTL)

		if err != nil {
			return err
		}

		c.TTL = ttl
	}

	return nil
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:      "development",
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /users": {
				Requests: 20,
				Window:   time.Minute,
			},
			"GET /users": {
				Requests: 100,
				Window:   time.Minute,
			},
			"default": {
				Requests: 60,
				Window:   time.Minute,
			},
		},
		CacheEnabled: true,
		CacheConfigs: map[string]CacheConfig{
			"/users": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
		},
	}
}

// Load resolves the configuration with increasing precedence: defaults, then
// the optional YAML file, then environment variables.
func Load() *AppConfig {
	config := GetDefaultConfig()

	configFile := os.Getenv("USERAPP_CONFIG_FILE")

	if configFile == "" {
		configFile = "userapp.yaml"
	}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			slog.Error("Invalid config file, using defaults", "file", configFile, "error", err)
			config = GetDefaultConfig()
		} else {
			slog.Info("Config loaded from file", "file", configFile)
		}
	}

	applyEnvOverrides(config)

	return config
}

func applyEnvOverrides(config *AppConfig) {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		config.Environment = env
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.RateLimitEnabled = enabled
		}
	}

	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.CacheEnabled = enabled
		}
	}
}

func GetServerPort() string {
	port := os.Getenv("PORT")

	if port == "" {
		port = "3333"
	}

	return port
}

func GetRedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}
