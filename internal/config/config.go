// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Processor ProcessorConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port               int
	MaxUploadMB        int
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type LoggingConfig struct {
	Environment string
	Level       string
}

type ProcessorConfig struct {
	TempDir  string
	Workers  int
	BlockGap float64
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnvAsInt("PORT", 8000),
			MaxUploadMB:        getEnvAsInt("MAX_UPLOAD_MB", 32),
			RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Logging: LoggingConfig{
			Environment: getEnv("ENVIRONMENT", "production"),
			Level:       getEnv("LOG_LEVEL", ""),
		},
		Processor: ProcessorConfig{
			TempDir:  getEnv("TEMP_DIR", os.TempDir()),
			Workers:  getEnvAsInt("WORKERS", 0),
			BlockGap: getEnvAsFloat("BLOCK_GAP", 50),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.Server.MaxUploadMB))
	}
	if c.Server.RateLimitPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive, got %g", c.Server.RateLimitPerSecond))
	}
	if c.Server.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.Server.RateLimitBurst))
	}
	if c.Processor.Workers < 0 {
		errs = append(errs, fmt.Errorf("WORKERS must not be negative, got %d", c.Processor.Workers))
	}
	if c.Processor.BlockGap <= 0 {
		errs = append(errs, fmt.Errorf("BLOCK_GAP must be positive, got %g", c.Processor.BlockGap))
	}
	if c.Processor.TempDir == "" {
		errs = append(errs, errors.New("TEMP_DIR must not be empty"))
	}
	return errors.Join(errs...)
}

// BodyLimit returns the maximum accepted request body in bytes.
func (c ServerConfig) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
