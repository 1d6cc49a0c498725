// Package parser talks to an external dependency-parse service. Parses are
// an optional enrichment: callers degrade to pattern and co-occurrence
// extraction when the service is down.
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// ErrUnavailable reports that the parse service could not be reached or
// answered with a server error.
var ErrUnavailable = errors.New("parse service unavailable")

// Client produces a dependency parse for one sentence.
type Client interface {
	ParseSentence(ctx context.Context, text string) (*types.SentenceParse, error)
	Close() error
}

// Config holds the HTTP client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPClient is a Client over a JSON parse endpoint: POST {base}/parse with
// {"text": ...} returning the token list.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a parse service client.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Tokens []types.ParseToken `json:"tokens"`
}

// ParseSentence implements Client.
func (c *HTTPClient) ParseSentence(ctx context.Context, text string) (*types.SentenceParse, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("parse request failed: status %d: %s", resp.StatusCode, data)
	}

	var out parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode parse response: %w", err)
	}
	return &types.SentenceParse{Tokens: out.Tokens}, nil
}

// Close implements Client.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
