package main

import (
	"fmt"
	"log/slog"
	"time"

	wayangkg "github.com/adrianreza/wayangkg"
	"github.com/adrianreza/wayangkg/pkg/config"
	"github.com/adrianreza/wayangkg/pkg/extract"
	"github.com/adrianreza/wayangkg/pkg/logger"
	"github.com/adrianreza/wayangkg/pkg/parser"
)

// newLogger builds the process logger from the loaded configuration.
func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

// newKGClient wires a pipeline client from the loaded configuration: the
// optional parse service behind a circuit breaker, the pattern catalog and
// tier settings.
func newKGClient(cfg *config.Config, log *slog.Logger) (*wayangkg.Client, error) {
	var parserClient parser.Client
	if cfg.Parser.Enabled {
		httpClient := parser.NewHTTPClient(parser.Config{
			BaseURL: cfg.Parser.BaseURL,
			Timeout: time.Duration(cfg.Parser.Timeout) * time.Second,
		})
		parserClient = httpClient
		if cfg.CircuitBreaker.Enabled {
			parserClient = parser.NewCircuitBreakerClient(httpClient, parser.CircuitBreakerConfig{
				Enabled:          cfg.CircuitBreaker.Enabled,
				MaxRequests:      cfg.CircuitBreaker.MaxRequests,
				Interval:         cfg.CircuitBreaker.Interval,
				Timeout:          cfg.CircuitBreaker.Timeout,
				ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
			}, log)
		}
		log.Info("parse service enabled", "url", cfg.Parser.BaseURL)
	}

	var patterns []extract.Pattern
	if cfg.Extraction.PatternFile != "" {
		var err error
		patterns, err = extract.LoadPatterns(cfg.Extraction.PatternFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load pattern catalog: %w", err)
		}
		log.Info("loaded pattern catalog",
			"file", cfg.Extraction.PatternFile, "patterns", len(patterns))
	}

	return wayangkg.NewClient(parserClient, &wayangkg.Config{
		Patterns: patterns,
		Cooccurrence: extract.CooccurrenceConfig{
			MinMentions: cfg.Extraction.Cooccurrence.MinMentions,
			MaxMentions: cfg.Extraction.Cooccurrence.MaxMentions,
			Confidence:  cfg.Extraction.Cooccurrence.Confidence,
		},
		MaxContexts:   cfg.Graph.MaxContexts,
		TopK:          cfg.Graph.TopK,
		TypePromotion: cfg.Graph.TypePromotion,
	}, log)
}
