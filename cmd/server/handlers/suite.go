package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/generate"
	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/provider"
)

// SuiteHandler handles suite-generation requests.
type SuiteHandler struct {
	pipeline       *generate.Pipeline
	tests          TestStore
	settings       *ProviderSettings
	sink           broadcast.Sink
	defaultBaseURL string
	logger         logger.Logger
}

// NewSuiteHandler creates a suite-generation handler. The tests store is the
// directory the external runner executes from.
func NewSuiteHandler(
	pipeline *generate.Pipeline,
	tests TestStore,
	settings *ProviderSettings,
	sink broadcast.Sink,
	defaultBaseURL string,
	log logger.Logger,
) *SuiteHandler {
	return &SuiteHandler{
		pipeline:       pipeline,
		tests:          tests,
		settings:       settings,
		sink:           sink,
		defaultBaseURL: defaultBaseURL,
		logger:         log,
	}
}

// GenerateSuiteRequest represents a suite-generation request. Provider values
// override the process-wide defaults for this call only.
type GenerateSuiteRequest struct {
	Description  string          `json:"description"`
	ProjectLabel string          `json:"project_label"`
	BaseURL      string          `json:"base_url"`
	Provider     provider.Config `json:"provider"`
}

// GenerateSuiteResponse represents a successful suite generation.
type GenerateSuiteResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
	Count   int      `json:"count"`
}

// Generate runs the suite-generation pipeline and writes each rendered test
// into the test directory. Pipeline failures degrade to fallback internally
// and never fail the request; only a file-write failure does, and files
// already written are not rolled back.
func (h *SuiteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateSuiteRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProjectLabel == "" {
		req.ProjectLabel = "App"
	}
	if req.BaseURL == "" {
		req.BaseURL = h.defaultBaseURL
	}

	cfg := h.settings.Get().WithOverrides(req.Provider)

	h.sink.Notify(broadcast.Event{
		Kind:    broadcast.KindStatus,
		Message: fmt.Sprintf("generating test suite for %s", req.ProjectLabel),
	})

	rendered := h.pipeline.GenerateSuite(ctx, generate.Request{
		Description:  req.Description,
		ProjectLabel: req.ProjectLabel,
		BaseURL:      req.BaseURL,
	}, cfg)

	files := make([]string, 0, len(rendered))
	for _, test := range rendered {
		if err := h.tests.Write(ctx, test.FileName, strings.NewReader(test.Content)); err != nil {
			h.logger.Error(ctx, "failed to write rendered test", map[string]interface{}{
				"error": err.Error(),
				"file":  test.FileName,
			})
			h.sink.Notify(broadcast.Event{
				Kind:    broadcast.KindError,
				Message: fmt.Sprintf("failed to write %s: %v", test.FileName, err),
			})
			respondError(w, http.StatusInternalServerError, "failed to write test files")
			return
		}
		files = append(files, test.FileName)
		h.sink.Notify(broadcast.Event{
			Kind:    broadcast.KindStatus,
			Message: fmt.Sprintf("wrote %s", test.FileName),
		})
	}

	h.sink.Notify(broadcast.Event{
		Kind:    broadcast.KindSuccess,
		Message: fmt.Sprintf("generated %d tests", len(files)),
	})
	h.logger.Info(ctx, "suite generation completed", map[string]interface{}{
		"project": req.ProjectLabel,
		"tests":   len(files),
	})

	respondJSON(w, http.StatusOK, GenerateSuiteResponse{
		Message: fmt.Sprintf("generated %d tests", len(files)),
		Files:   files,
		Count:   len(files),
	})
}
