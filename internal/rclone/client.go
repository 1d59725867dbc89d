package rclone

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

var commandContext = exec.CommandContext

// ExitNotFound is reported when the rclone executable cannot be
// located or launched, so a missing binary degrades to a logged
// failure instead of crashing the loop.
const ExitNotFound = 127

// Job describes one sync invocation, source to destination.
type Job struct {
	Local      string
	Remote     string
	BufferSize string
	LogLevel   string
	BWLimit    string
	ExtraFlags []string
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the rclone command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "rclone"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Args returns the argument vector for a job. Transfers and checkers
// are pinned to 1 so invocations stay serialized and predictable on a
// constrained link. Caller extra flags go last and can override any
// default.
func (c *CLI) Args(job Job) []string {
	args := []string{
		"sync",
		job.Local,
		job.Remote,
		"--transfers", "1",
		"--checkers", "1",
		"--buffer-size", job.BufferSize,
		"--log-level", job.LogLevel,
	}
	if job.BWLimit != "" {
		args = append(args, "--bwlimit", job.BWLimit)
	}
	return append(args, job.ExtraFlags...)
}

// Sync runs one rclone sync and blocks until the child exits. The
// child's exit status is returned verbatim; rclone's output is not
// parsed. A binary that cannot be launched yields ExitNotFound with a
// nil error.
func (c *CLI) Sync(ctx context.Context, job Job) (int, error) {
	if job.Local == "" {
		return 0, errors.New("local path required")
	}
	if job.Remote == "" {
		return 0, errors.New("remote required")
	}

	cmd := commandContext(ctx, c.binary, c.Args(job)...) //nolint:gosec
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	// Lookup failures surface as exec.ErrNotFound for bare names and
	// as fs.ErrNotExist for explicit paths.
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound, nil
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return ExitNotFound, nil
	}
	return 0, fmt.Errorf("run rclone: %w", err)
}
