package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// BackendConfig holds the categories REST API configuration
type BackendConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	CategoriesPath       string `mapstructure:"categories_path"`
	Timeout              int    `mapstructure:"timeout"`    // Seconds
	MaxRetries           int    `mapstructure:"max_retries"`
	RetryWait            int    `mapstructure:"retry_wait"` // Milliseconds
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	Proxy                string `mapstructure:"proxy"`

	// Authentication
	Token string `mapstructure:"token"`
}

// RedisConfig holds Redis connection details for the draft stash
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the current directory; a missing
// file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url must be set")
	}
	if !strings.HasPrefix(c.Backend.CategoriesPath, "/") {
		return fmt.Errorf("backend.categories_path must start with '/': %q", c.Backend.CategoriesPath)
	}
	if c.Backend.MaxRetries < 0 {
		return fmt.Errorf("backend.max_retries must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:3000")
	v.SetDefault("backend.categories_path", "/api/categories")
	v.SetDefault("backend.timeout", 30)
	v.SetDefault("backend.max_retries", 3)
	v.SetDefault("backend.retry_wait", 500)
	v.SetDefault("backend.max_requests_per_second", 10)
	v.SetDefault("backend.proxy", "")
	v.SetDefault("backend.token", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "catman:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
