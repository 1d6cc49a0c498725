// Package config loads application configuration from file, environment
// and defaults via viper.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Extraction configuration
	Extraction ExtractionConfig `mapstructure:"extraction"`

	// Graph configuration
	Graph GraphConfig `mapstructure:"graph"`

	// Parser configuration
	Parser ParserConfig `mapstructure:"parser"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// ExtractionConfig holds relation extraction configuration
type ExtractionConfig struct {
	// PatternFile optionally extends the built-in pattern catalog
	PatternFile string `mapstructure:"pattern_file"`

	Cooccurrence CooccurrenceConfig `mapstructure:"cooccurrence"`
}

// CooccurrenceConfig holds the sentence window for statistical extraction
type CooccurrenceConfig struct {
	MinMentions int     `mapstructure:"min_mentions"`
	MaxMentions int     `mapstructure:"max_mentions"`
	Confidence  float64 `mapstructure:"confidence"`
}

// GraphConfig holds knowledge graph configuration
type GraphConfig struct {
	MaxContexts   int  `mapstructure:"max_contexts"`
	TopK          int  `mapstructure:"top_k"`
	TypePromotion bool `mapstructure:"type_promotion"`
}

// ParserConfig holds the dependency parse service configuration
type ParserConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // in seconds
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Extraction defaults
	viper.SetDefault("extraction.pattern_file", "")
	viper.SetDefault("extraction.cooccurrence.min_mentions", 2)
	viper.SetDefault("extraction.cooccurrence.max_mentions", 4)
	viper.SetDefault("extraction.cooccurrence.confidence", 0.35)

	// Graph defaults
	viper.SetDefault("graph.max_contexts", 5)
	viper.SetDefault("graph.top_k", 10)
	viper.SetDefault("graph.type_promotion", false)

	// Parser defaults
	viper.SetDefault("parser.enabled", false)
	viper.SetDefault("parser.base_url", "http://localhost:9090")
	viper.SetDefault("parser.timeout", 10)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if url := os.Getenv("PARSER_URL"); url != "" {
		config.Parser.BaseURL = url
		config.Parser.Enabled = true
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
