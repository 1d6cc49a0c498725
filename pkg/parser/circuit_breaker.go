package parser

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// CircuitBreakerConfig tunes the breaker around the parse service.
type CircuitBreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         int
	Timeout          int
	ReadyToTripRatio float64
}

// DefaultCircuitBreakerConfig returns the stock breaker settings.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         60,
		Timeout:          30,
		ReadyToTripRatio: 0.6,
	}
}

// CircuitBreakerClient wraps a Client with circuit breaking logic, so a
// parse service outage fails fast instead of stalling every sentence on a
// timeout.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

// NewCircuitBreakerClient creates a breaker-wrapped parse client.
func NewCircuitBreakerClient(client Client, cfg CircuitBreakerConfig, logger *slog.Logger) *CircuitBreakerClient {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        "parse-service",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &CircuitBreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(st),
		logger: logger,
	}
}

// ParseSentence implements Client.
func (c *CircuitBreakerClient) ParseSentence(ctx context.Context, text string) (*types.SentenceParse, error) {
	resp, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.ParseSentence(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return resp.(*types.SentenceParse), nil
}

// Close implements Client.
func (c *CircuitBreakerClient) Close() error {
	return c.client.Close()
}
