package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianreza/wayangkg/pkg/types"
)

func TestHTTPClientParseSentence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/parse", r.URL.Path)

		var req parseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Bima melawan Rahwana", req.Text)

		json.NewEncoder(w).Encode(parseResponse{Tokens: []types.ParseToken{
			{Text: "Bima", POS: "PROPN", Head: 1, Dep: "nsubj"},
			{Text: "melawan", Lemma: "lawan", POS: "VERB", Head: 1, Dep: "root"},
			{Text: "Rahwana", POS: "PROPN", Head: 1, Dep: "obj"},
		}})
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL})
	parse, err := c.ParseSentence(context.Background(), "Bima melawan Rahwana")
	require.NoError(t, err)
	require.Len(t, parse.Tokens, 3)
	assert.Equal(t, "melawan", parse.Tokens[1].Text)
	assert.Equal(t, "obj", parse.Tokens[2].Dep)
}

func TestHTTPClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL})
	_, err := c.ParseSentence(context.Background(), "teks")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClientBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "text is required", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL})
	_, err := c.ParseSentence(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	inner := NewHTTPClient(Config{BaseURL: srv.URL})
	c := NewCircuitBreakerClient(inner, DefaultCircuitBreakerConfig(), nil)

	for i := 0; i < 5; i++ {
		_, err := c.ParseSentence(context.Background(), "teks")
		require.Error(t, err)
	}

	// Once open, calls fail without reaching the server.
	_, err := c.ParseSentence(context.Background(), "teks")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
