package handlers

import (
	"net/http"
	"sync"

	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/provider"
)

// ProviderSettings holds the process-wide provider defaults. Updates are
// last-write-wins behind a single mutex; request-level values override these
// per call without mutating them.
type ProviderSettings struct {
	mu  sync.RWMutex
	cfg provider.Config
}

// NewProviderSettings seeds the settings from startup configuration.
func NewProviderSettings(cfg provider.Config) *ProviderSettings {
	return &ProviderSettings{cfg: cfg}
}

// Get returns a copy of the current defaults.
func (s *ProviderSettings) Get() provider.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Apply overlays the non-empty fields of the update onto the defaults.
// Updates are merge-only: empty fields leave the current values in place, so
// a field set once cannot be cleared through Apply, only replaced. Clearing
// requires a process restart with different startup configuration.
func (s *ProviderSettings) Apply(update provider.Config) provider.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = s.cfg.WithOverrides(update)
	return s.cfg
}

// SettingsHandler exposes the process-wide provider defaults over HTTP.
type SettingsHandler struct {
	settings *ProviderSettings
	logger   logger.Logger
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(settings *ProviderSettings, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: log}
}

// providerSettingsResponse mirrors provider.Config with the key redacted.
type providerSettingsResponse struct {
	Kind      provider.Kind `json:"kind"`
	Model     string        `json:"model,omitempty"`
	BaseURL   string        `json:"base_url,omitempty"`
	Region    string        `json:"region,omitempty"`
	HasAPIKey bool          `json:"has_api_key"`
}

func settingsResponse(cfg provider.Config) providerSettingsResponse {
	return providerSettingsResponse{
		Kind:      cfg.Kind,
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		Region:    cfg.Region,
		HasAPIKey: cfg.APIKey != "",
	}
}

// Get returns the current defaults with the API key redacted.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, settingsResponse(h.settings.Get()))
}

// Update overlays the submitted fields onto the defaults. Omitted and empty
// fields keep their current values; PUT cannot clear a field, only replace it.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req provider.Config
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Kind != "" && !req.Kind.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid provider kind")
		return
	}

	updated := h.settings.Apply(req)
	h.logger.Info(r.Context(), "provider settings updated", map[string]interface{}{
		"kind":  string(updated.Kind),
		"model": updated.Model,
	})
	respondJSON(w, http.StatusOK, settingsResponse(updated))
}
