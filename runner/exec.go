package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/hairizuan-noorazman/suitegen/logger"
)

// ExecRunner runs tests by shelling out to a configured executable. The test
// file path is passed as the final argument.
type ExecRunner struct {
	binPath string
	args    []string
	logger  logger.Logger
}

// NewExecRunner creates a runner for the given executable and fixed leading
// arguments.
func NewExecRunner(binPath string, args []string, log logger.Logger) *ExecRunner {
	return &ExecRunner{
		binPath: binPath,
		args:    args,
		logger:  log,
	}
}

// Run starts the subprocess and streams its stdout and stderr line by line.
func (r *ExecRunner) Run(ctx context.Context, path string, opts Options) (<-chan Event, error) {
	args := make([]string, 0, len(r.args)+1+len(opts.ExtraArgs))
	args = append(args, r.args...)
	args = append(args, path)
	args = append(args, opts.ExtraArgs...)

	cmd := exec.CommandContext(ctx, r.binPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start test runner: %w", err)
	}

	r.logger.Info(ctx, "test runner started", map[string]interface{}{
		"bin":  r.binPath,
		"path": path,
	})

	events := make(chan Event, 64)

	var wg sync.WaitGroup
	wg.Add(2)
	go r.scanLines(stdout, "stdout", events, &wg)
	go r.scanLines(stderr, "stderr", events, &wg)

	go func() {
		wg.Wait()
		err := cmd.Wait()

		terminal := Event{Done: true}
		if err != nil {
			terminal.Err = err
			if exitErr, ok := err.(*exec.ExitError); ok {
				terminal.ExitCode = exitErr.ExitCode()
			} else {
				terminal.ExitCode = -1
			}
		}
		events <- terminal
		close(events)
	}()

	return events, nil
}

// scanLines forwards lines from one pipe into the event channel.
func (r *ExecRunner) scanLines(pipe io.Reader, stream string, events chan<- Event, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(pipe)
	// Runner output lines can be long; widen the scan buffer.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		events <- Event{Stream: stream, Line: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		// Keep draining so the subprocess never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, pipe)
		r.logger.Error(context.Background(), "runner output scan failed", map[string]interface{}{
			"stream": stream,
			"error":  err.Error(),
		})
		events <- Event{Stream: stream, Line: fmt.Sprintf("[%s interrupted: %v]", stream, err)}
	}
}
