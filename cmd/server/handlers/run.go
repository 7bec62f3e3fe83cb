package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/runner"
	"github.com/hairizuan-noorazman/suitegen/storage"
)

// RunHandler executes rendered test files through the injected runner and
// streams output to the broadcast hub.
type RunHandler struct {
	runner    runner.TestRunner
	tests     *storage.TestDir
	artifacts storage.Archive
	sink      broadcast.Sink
	logger    logger.Logger
}

// NewRunHandler creates a run handler. Rendered tests must live in a local
// directory because the runner needs a filesystem path; run logs archive to
// any Archive backend.
func NewRunHandler(
	testRunner runner.TestRunner,
	tests *storage.TestDir,
	artifacts storage.Archive,
	sink broadcast.Sink,
	log logger.Logger,
) *RunHandler {
	return &RunHandler{
		runner:    testRunner,
		tests:     tests,
		artifacts: artifacts,
		sink:      sink,
		logger:    log,
	}
}

// RunRequest represents a test-run request.
type RunRequest struct {
	FileName string `json:"file_name"`
}

// RunResponse represents an accepted test run.
type RunResponse struct {
	Message string `json:"message"`
	RunID   string `json:"run_id"`
}

// Run starts a test execution and returns 202 immediately; output is
// delivered through the broadcast hub as the subprocess produces it.
func (h *RunHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RunRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileName == "" {
		respondError(w, http.StatusBadRequest, "file_name is required")
		return
	}

	path, err := h.tests.Path(ctx, req.FileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "test file not found")
			return
		}
		if errors.Is(err, storage.ErrInvalidName) {
			respondError(w, http.StatusBadRequest, "invalid file name")
			return
		}
		h.logger.Error(ctx, "failed to resolve test file", map[string]interface{}{
			"error": err.Error(),
			"file":  req.FileName,
		})
		respondError(w, http.StatusInternalServerError, "failed to resolve test file")
		return
	}

	runID := uuid.New()

	// Detached context: the run outlives the HTTP request.
	go h.streamRun(context.Background(), runID, req.FileName, path)

	h.logger.Info(ctx, "test run started", map[string]interface{}{
		"run_id": runID.String(),
		"file":   req.FileName,
	})
	respondJSON(w, http.StatusAccepted, RunResponse{
		Message: fmt.Sprintf("running %s", req.FileName),
		RunID:   runID.String(),
	})
}

// streamRun fans runner output out to the hub and archives the full log as a
// run artifact when the process finishes.
func (h *RunHandler) streamRun(ctx context.Context, runID uuid.UUID, fileName, path string) {
	h.sink.Notify(broadcast.Event{
		Kind:    broadcast.KindStatus,
		Message: fmt.Sprintf("running %s", fileName),
	})

	events, err := h.runner.Run(ctx, path, runner.Options{})
	if err != nil {
		h.logger.Error(ctx, "failed to start test runner", map[string]interface{}{
			"error":  err.Error(),
			"run_id": runID.String(),
		})
		h.sink.Notify(broadcast.Event{
			Kind:    broadcast.KindError,
			Message: fmt.Sprintf("failed to start run: %v", err),
		})
		return
	}

	var log strings.Builder
	for ev := range events {
		if !ev.Done {
			log.WriteString(ev.Line)
			log.WriteByte('\n')
			h.sink.Notify(broadcast.Event{
				Kind:    broadcast.KindOutput,
				Message: ev.Line,
			})
			continue
		}

		if ev.Err != nil {
			h.sink.Notify(broadcast.Event{
				Kind:    broadcast.KindError,
				Message: fmt.Sprintf("%s failed with exit code %d", fileName, ev.ExitCode),
			})
		} else {
			h.sink.Notify(broadcast.Event{
				Kind:    broadcast.KindSuccess,
				Message: fmt.Sprintf("%s passed", fileName),
			})
		}
	}

	h.archiveLog(ctx, runID, fileName, log.String())
}

// archiveLog stores the collected run log and tells observers where to find
// it. Archiving is best-effort; a failed upload never fails the run.
func (h *RunHandler) archiveLog(ctx context.Context, runID uuid.UUID, fileName, log string) {
	key := fmt.Sprintf("runs/%s/%s.log", runID.String(), fileName)
	if err := h.artifacts.Put(ctx, key, strings.NewReader(log)); err != nil {
		h.logger.Warn(ctx, "failed to archive run log", map[string]interface{}{
			"error":  err.Error(),
			"run_id": runID.String(),
		})
		return
	}

	loc, err := h.artifacts.Location(ctx, key)
	if err != nil {
		h.logger.Warn(ctx, "failed to locate archived run log", map[string]interface{}{
			"error":  err.Error(),
			"run_id": runID.String(),
		})
		return
	}
	h.sink.Notify(broadcast.Event{
		Kind:    broadcast.KindStatus,
		Message: fmt.Sprintf("run log archived at %s", loc),
	})
}
