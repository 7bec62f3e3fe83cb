package testspec

import (
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidTestName is returned when a test spec name is empty.
	ErrInvalidTestName = errors.New("test name is required")

	// ErrInvalidSteps is returned when steps cannot be serialized.
	ErrInvalidSteps = errors.New("invalid steps")
)

// Step is a single browser action or assertion. Steps are kept as loose maps
// because AI-derived specs routinely contain extra or malformed fields; the
// renderer decides what it understands.
type Step map[string]interface{}

// Steps is an ordered list of steps.
type Steps []Step

// Recognized step kinds. Anything outside this set is dropped at render time.
const (
	KindNavigate   = "navigate"
	KindWait       = "wait"
	KindInput      = "input"
	KindTap        = "tap"
	KindScreenshot = "screenshot"
	KindAssert     = "assert"
)

// DefaultWaitTimeoutMs is the wait timeout used when a wait step omits one.
const DefaultWaitTimeoutMs = 2000

// RecognizedKinds maps each known step kind to true.
var RecognizedKinds = map[string]bool{
	KindNavigate:   true,
	KindWait:       true,
	KindInput:      true,
	KindTap:        true,
	KindScreenshot: true,
	KindAssert:     true,
}

// TestSpec is one in-memory test definition, produced either by the AI
// extraction path or by the deterministic fallback generator. It is rendered
// once to text and discarded.
type TestSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Variables   map[string]string `json:"variables,omitempty"`
	Steps       Steps             `json:"steps"`
}

// Kind returns the step's type discriminant, or "" when absent or not a string.
func (s Step) Kind() string {
	kind, _ := s["type"].(string)
	return kind
}

// String returns the named field as a string, or "" when absent or mistyped.
func (s Step) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Bool returns the named field as a bool, defaulting when absent or mistyped.
func (s Step) Bool(key string, def bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return def
}

// Int returns the named field as an int, defaulting when absent or mistyped.
// JSON decoding yields float64 for all numbers, so that is handled too.
func (s Step) Int(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Validate checks that the spec has a name and serializable steps. Individual
// step contents are deliberately not checked here; rendering is lenient.
func (t *TestSpec) Validate() error {
	if t.Name == "" {
		return ErrInvalidTestName
	}
	if t.Steps != nil {
		if _, err := json.Marshal(t.Steps); err != nil {
			return ErrInvalidSteps
		}
	}
	return nil
}
