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

func TestOpenAISendPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultOpenAIModel, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "generate tests", req.Messages[0].Content)

		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "[]"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	o := NewOpenAI(server.URL, "sk-test", "")
	got, err := o.SendPrompt(context.Background(), "generate tests")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestOpenAISendPromptNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	o := NewOpenAI(server.URL, "sk-test", "")
	_, err := o.SendPrompt(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOpenAISendPromptUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	o := NewOpenAI(server.URL, "sk-bad", "")
	_, err := o.SendPrompt(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
