package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIBaseURL   string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	Port         string        `envconfig:"PORT"         default:":3000"`
	LogLevel     string        `envconfig:"LOG_LEVEL"    default:"info"`
	GinMode      string        `envconfig:"GIN_MODE"     default:"release"`
	APITimeout   time.Duration `envconfig:"API_TIMEOUT"  default:"5s"`
	PageSize     int           `envconfig:"PAGE_SIZE"    default:"10"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Infof("Configuration loaded: API=%s, Port=%s, LogLevel=%s", cfg.APIBaseURL, cfg.Port, cfg.LogLevel)
	return &cfg, nil
}

func (c *Config) validate() error {
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
	if !strings.HasPrefix(c.Port, ":") && !strings.Contains(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	return nil
}
