package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSettingsApply(t *testing.T) {
	settings := NewProviderSettings(provider.Config{Kind: provider.KindOllama, Model: "llama3.2"})

	updated := settings.Apply(provider.Config{Kind: provider.KindOpenAI, APIKey: "sk-test"})
	assert.Equal(t, provider.KindOpenAI, updated.Kind)
	assert.Equal(t, "sk-test", updated.APIKey)
	assert.Equal(t, "llama3.2", updated.Model)

	assert.Equal(t, updated, settings.Get())
}

func TestSettingsHandlerGetRedactsAPIKey(t *testing.T) {
	settings := NewProviderSettings(provider.Config{
		Kind:   provider.KindAnthropic,
		APIKey: "sk-ant-secret",
		Model:  "claude-sonnet-4-5",
	})
	h := NewSettingsHandler(settings, logger.NewTestLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings/provider", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-ant-secret")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "anthropic", resp["kind"])
	assert.Equal(t, true, resp["has_api_key"])
}

func TestSettingsHandlerUpdate(t *testing.T) {
	settings := NewProviderSettings(provider.Config{Kind: provider.KindOllama})
	h := NewSettingsHandler(settings, logger.NewTestLogger())

	body := `{"kind": "openai", "api_key": "sk-test", "model": "gpt-4o-mini"}`
	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings/provider", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, provider.KindOpenAI, settings.Get().Kind)
	assert.Equal(t, "sk-test", settings.Get().APIKey)
}

func TestSettingsHandlerUpdateKeepsOmittedFields(t *testing.T) {
	settings := NewProviderSettings(provider.Config{
		Kind:   provider.KindOpenAI,
		APIKey: "sk-existing",
		Model:  "gpt-4o-mini",
	})
	h := NewSettingsHandler(settings, logger.NewTestLogger())

	// Empty fields merge, they do not clear.
	body := `{"model": "gpt-4o", "api_key": ""}`
	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings/provider", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gpt-4o", settings.Get().Model)
	assert.Equal(t, "sk-existing", settings.Get().APIKey)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["has_api_key"])
}

func TestSettingsHandlerUpdateRejectsUnknownKind(t *testing.T) {
	settings := NewProviderSettings(provider.Config{Kind: provider.KindOllama})
	h := NewSettingsHandler(settings, logger.NewTestLogger())

	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings/provider", strings.NewReader(`{"kind": "gemini"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, provider.KindOllama, settings.Get().Kind)
}

func TestSettingsHandlerUpdateRejectsBadJSON(t *testing.T) {
	h := NewSettingsHandler(NewProviderSettings(provider.Config{}), logger.NewTestLogger())

	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings/provider", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
