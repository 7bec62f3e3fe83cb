// Package extract locates and parses test-suite specifications embedded in
// raw AI output. Models wrap their answers in prose and markdown fences, so
// extraction works on the first '[' through the last ']' of the text.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hairizuan-noorazman/suitegen/testspec"
)

var (
	// ErrExtractionFailed is returned when no parseable array can be located.
	// Callers treat it as the trigger for deterministic fallback, never as a
	// request failure.
	ErrExtractionFailed = errors.New("no test suite found in response")

	// ErrEmptySuite is returned when the response parses to an empty array.
	// An empty suite is useless, so it is treated the same as a parse failure
	// and routed to fallback.
	ErrEmptySuite = errors.New("response contained an empty test suite")
)

// candidate mirrors the JSON shape the prompt asks the model for. Steps stay
// as raw maps; malformed individual steps are tolerated and simply render as
// no-ops downstream.
type candidate struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Steps       testspec.Steps `json:"steps"`
}

// Suites extracts an ordered sequence of test specs from raw model output.
func Suites(raw string) ([]testspec.TestSpec, error) {
	body := arrayBody(raw)
	if body == "" {
		return nil, ErrExtractionFailed
	}

	var candidates []candidate
	if err := json.Unmarshal([]byte(body), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptySuite
	}

	specs := make([]testspec.TestSpec, 0, len(candidates))
	for i, c := range candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = fmt.Sprintf("Generated Test %d", i+1)
		}
		specs = append(specs, testspec.TestSpec{
			Name:        name,
			Description: strings.TrimSpace(c.Description),
			Steps:       c.Steps,
		})
	}
	return specs, nil
}

// arrayBody returns the substring from the first '[' to the last ']', or ""
// when the text contains no such span. Everything around it (prose, code
// fences) is discarded.
func arrayBody(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
