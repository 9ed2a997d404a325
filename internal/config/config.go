// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	OrgName      string        `mapstructure:"ORG_NAME"`
	GithubToken  string        `mapstructure:"GITHUB_TOKEN"`
	UserAgent    string        `mapstructure:"USER_AGENT"`
	PublicOnly   bool          `mapstructure:"PUBLIC_ONLY"`
	APIBaseURL   string        `mapstructure:"API_BASE_URL"`
	DataDir      string        `mapstructure:"DATA_DIR"`
	RetryCount   int           `mapstructure:"RETRY_COUNT"`
	RetryBackoff time.Duration `mapstructure:"RETRY_BACKOFF"`
	StrictPages  bool          `mapstructure:"STRICT_PAGES"`
	ListenAddr   string        `mapstructure:"LISTEN_ADDR"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PUBLIC_ONLY", true)
	viper.SetDefault("API_BASE_URL", "https://api.github.com")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("RETRY_COUNT", 5)
	viper.SetDefault("RETRY_BACKOFF", "100ms")
	viper.SetDefault("STRICT_PAGES", false)
	viper.SetDefault("LISTEN_ADDR", ":8080")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.OrgName == "" {
		return nil, errors.New("ORG_NAME is a required configuration field")
	}
	if cfg.GithubToken == "" {
		return nil, errors.New("GITHUB_TOKEN is a required configuration field")
	}
	if cfg.UserAgent == "" {
		return nil, errors.New("USER_AGENT is a required configuration field")
	}
	if cfg.RetryCount < 0 {
		return nil, errors.New("RETRY_COUNT must not be negative")
	}

	return &cfg, nil
}
