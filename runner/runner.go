// Package runner executes rendered test files through the external
// test-runner executable and streams its output as it becomes available.
package runner

import "context"

// Event is one unit of runner output. Line events arrive incrementally while
// the run is in progress; the terminal event has Done set and carries the
// exit code (and error, if the run could not complete).
type Event struct {
	Stream   string `json:"stream,omitempty"` // "stdout" or "stderr"
	Line     string `json:"line,omitempty"`
	Done     bool   `json:"done,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
	Err      error  `json:"-"`
}

// Options tunes one run.
type Options struct {
	// ExtraArgs are appended to the runner invocation after the test path.
	ExtraArgs []string
}

// TestRunner is the capability interface over test execution. Callers never
// learn that the implementation is a subprocess.
type TestRunner interface {
	// Run starts executing the test at path. The returned channel delivers
	// line events followed by exactly one Done event, then closes. An error
	// is returned only when the run cannot be started at all.
	Run(ctx context.Context, path string, opts Options) (<-chan Event, error)
}
