package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"comment-screener/internal/threshold"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	MLService struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"ml_service"`

	Lexicon struct {
		Path string `yaml:"path"` // optional YAML lexicon; built-in table when empty
	} `yaml:"lexicon"`

	Scoring struct {
		DefaultStrictness int `yaml:"default_strictness"`
	} `yaml:"scoring"`

	Exports struct {
		MaxRetained int `yaml:"max_retained"`
	} `yaml:"exports"`

	Auth struct {
		Enabled   bool   `yaml:"enabled"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	Logging struct {
		Mode string `yaml:"mode"` // development | production
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Expand environment variables before defaults so an unset variable
	// falls back to the default value
	config.Auth.JWTSecret = os.ExpandEnv(config.Auth.JWTSecret)
	config.MLService.URL = os.ExpandEnv(config.MLService.URL)

	applyDefaults(config)

	return config, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.MLService.URL == "" {
		config.MLService.URL = "http://127.0.0.1:8000"
	}

	if config.MLService.TimeoutSeconds == 0 {
		config.MLService.TimeoutSeconds = 30
	}

	if config.Exports.MaxRetained == 0 {
		config.Exports.MaxRetained = 20
	}

	if config.Logging.Mode == "" {
		config.Logging.Mode = "development"
	}
}

// Validate checks values that defaults cannot repair.
func Validate(config *Config) error {
	if config == nil {
		return errors.New("config is nil")
	}

	if err := threshold.Strictness(config.Scoring.DefaultStrictness).Validate(); err != nil {
		return fmt.Errorf("scoring.default_strictness: %w", err)
	}

	u, err := url.Parse(config.MLService.URL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("ml_service.url %q is invalid", config.MLService.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("ml_service.url must be http or https, got %q", u.Scheme)
	}

	if config.MLService.TimeoutSeconds < 0 {
		return errors.New("ml_service.timeout_seconds must not be negative")
	}

	if config.Exports.MaxRetained < 0 {
		return errors.New("exports.max_retained must not be negative")
	}

	if config.Auth.Enabled && strings.TrimSpace(config.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret must be set when auth is enabled")
	}

	switch config.Logging.Mode {
	case "development", "production":
	default:
		return fmt.Errorf("logging.mode must be development or production, got %q", config.Logging.Mode)
	}

	return nil
}
