package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaSendPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.Equal(t, "generate tests", req.Prompt)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(ollamaResponse{Response: `[{"name": "Smoke"}]`, Done: true})
	}))
	defer server.Close()

	o := NewOllama(server.URL, "")
	got, err := o.SendPrompt(context.Background(), "generate tests")
	require.NoError(t, err)
	assert.Equal(t, `[{"name": "Smoke"}]`, got)
}

func TestOllamaSendPromptServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	o := NewOllama(server.URL, "missing-model")
	_, err := o.SendPrompt(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOllamaSendPromptUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	o := NewOllama(server.URL, "")
	_, err := o.SendPrompt(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestNewOllamaDefaults(t *testing.T) {
	o := NewOllama("", "")
	assert.Equal(t, defaultOllamaURL, o.baseURL)
	assert.Equal(t, defaultOllamaModel, o.model)

	trimmed := NewOllama("http://models.internal/", "custom")
	assert.Equal(t, "http://models.internal", trimmed.baseURL)
	assert.Equal(t, "custom", trimmed.model)
}
