// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Extraction    ExtractionConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ExtractionConfig struct {
	// ConfidenceFloor is the minimum confidence an unconfirmed
	// extraction needs before it may be persisted.
	ConfidenceFloor float64
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	TracingEnabled bool
}

type ProfilingConfig struct {
	Enabled bool
	Port    int
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               envString("SERVER_HOST", "0.0.0.0"),
			Port:               envInt("SERVER_PORT", 8080),
			RateLimitPerSecond: envInt("RATE_LIMIT_PER_SECOND", 50),
			RateLimitBurst:     envInt("RATE_LIMIT_BURST", 100),
		},
		Database: DatabaseConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			User:     envString("DB_USER", "postgres"),
			Password: envString("DB_PASSWORD", "postgres"),
			Name:     envString("DB_NAME", "dividends"),
			SSLMode:  envString("DB_SSLMODE", "disable"),
		},
		Extraction: ExtractionConfig{
			ConfidenceFloor: envFloat("EXTRACTION_CONFIDENCE_FLOOR", 0.5),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: envBool("METRICS_ENABLED", true),
			TracingEnabled: envBool("TRACING_ENABLED", false),
		},
		Profiling: ProfilingConfig{
			Enabled: envBool("PPROF_ENABLED", false),
			Port:    envInt("PPROF_PORT", 6060),
		},
	}

	if cfg.Extraction.ConfidenceFloor < 0 || cfg.Extraction.ConfidenceFloor > 1 {
		return nil, fmt.Errorf("EXTRACTION_CONFIDENCE_FLOOR must be between 0 and 1, got %v", cfg.Extraction.ConfidenceFloor)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT out of range: %d", cfg.Server.Port)
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
