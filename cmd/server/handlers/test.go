package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/render"
	"github.com/hairizuan-noorazman/suitegen/testspec"
)

// TestHandler renders a single caller-authored test. Unlike the AI path,
// caller-supplied steps are strictly validated, and the test account is
// selected from the scenario name.
type TestHandler struct {
	tests          TestStore
	sink           broadcast.Sink
	defaultBaseURL string
	logger         logger.Logger
}

// NewTestHandler creates a single-test handler.
func NewTestHandler(tests TestStore, sink broadcast.Sink, defaultBaseURL string, log logger.Logger) *TestHandler {
	return &TestHandler{tests: tests, sink: sink, defaultBaseURL: defaultBaseURL, logger: log}
}

// GenerateTestRequest represents a single-test render request.
type GenerateTestRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	BaseURL     string         `json:"base_url"`
	Steps       testspec.Steps `json:"steps"`
}

// GenerateTestResponse represents a successful single-test render.
type GenerateTestResponse struct {
	Message  string `json:"message"`
	FileName string `json:"file_name"`
}

// Generate validates, renders, and writes one test definition.
func (h *TestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateTestRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "test name is required")
		return
	}
	if len(req.Steps) == 0 {
		respondError(w, http.StatusBadRequest, "at least one step is required")
		return
	}
	if req.BaseURL == "" {
		req.BaseURL = h.defaultBaseURL
	}

	if err := testspec.ValidateSteps(req.Steps); err != nil {
		if errors.Is(err, testspec.ErrInvalidStepStructure) || errors.Is(err, testspec.ErrTooManySteps) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to validate steps")
		return
	}

	creds := testspec.CredentialForScenario(req.Name)
	spec := testspec.TestSpec{
		Name:        req.Name,
		Description: req.Description,
		Variables: map[string]string{
			"email":    creds.Email,
			"password": creds.Password,
		},
		Steps: req.Steps,
	}

	rendered := render.Test(0, spec, req.BaseURL)
	if err := h.tests.Write(ctx, rendered.FileName, strings.NewReader(rendered.Content)); err != nil {
		h.logger.Error(ctx, "failed to write rendered test", map[string]interface{}{
			"error": err.Error(),
			"file":  rendered.FileName,
		})
		h.sink.Notify(broadcast.Event{
			Kind:    broadcast.KindError,
			Message: fmt.Sprintf("failed to write %s: %v", rendered.FileName, err),
		})
		respondError(w, http.StatusInternalServerError, "failed to write test file")
		return
	}

	h.sink.Notify(broadcast.Event{
		Kind:    broadcast.KindSuccess,
		Message: fmt.Sprintf("wrote %s", rendered.FileName),
	})

	respondJSON(w, http.StatusOK, GenerateTestResponse{
		Message:  "test rendered",
		FileName: rendered.FileName,
	})
}
