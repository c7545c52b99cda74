package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Naver  NaverConfig
	Search SearchConfig
	Cache  CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NaverConfig holds Naver open API configuration. The client id and secret
// are the two opaque credential headers every catalog call carries.
type NaverConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds search pipeline configuration
type SearchConfig struct {
	MaxPages int `mapstructure:"max_pages"`
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/salermoon/")

	// Environment variable settings
	v.SetEnvPrefix("SALERMOON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Naver API defaults
	v.SetDefault("naver.base_url", "https://openapi.naver.com")
	v.SetDefault("naver.timeout", "10s")

	// Search defaults
	v.SetDefault("search.max_pages", 10)

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Naver.ClientID == "" {
		return fmt.Errorf("Naver client id is required (set SALERMOON_NAVER_CLIENT_ID)")
	}

	if config.Naver.ClientSecret == "" {
		return fmt.Errorf("Naver client secret is required (set SALERMOON_NAVER_CLIENT_SECRET)")
	}

	if config.Search.MaxPages < 1 {
		return fmt.Errorf("search.max_pages must be at least 1, got: %d", config.Search.MaxPages)
	}

	return nil
}
