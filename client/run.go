// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
	"time"
)

// killGrace is how long a process gets between the termination signal
// and a forced kill when a timeout or cancellation fires.
const killGrace = 3 * time.Second

// invocationResult is the outcome of one bounded-mode invocation.
// A populated result means the process ran to completion, possibly
// with a non-zero exit code. Infrastructure failures (binary missing,
// deadline exceeded) never produce a result.
type invocationResult struct {
	exitCode int
	stdout   []byte
	stderr   []byte
	duration time.Duration
}

// run executes one invocation in bounded mode: it blocks until the
// process exits or the deadline elapses. The deadline is the
// invocation's timeout when set, otherwise the client default; on
// expiry the process is terminated (and killed after killGrace if it
// lingers) and a *TimeoutError is returned.
//
// A non-zero exit is not an error at this layer; it is returned in
// the result for the error mapper to classify.
func (c *Client) run(ctx context.Context, inv *invocation) (*invocationResult, error) {
	timeout := inv.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.binary, inv.args...)
	cmd.Env = c.processEnv(inv.env)
	if len(inv.stdin) > 0 {
		cmd.Stdin = bytes.NewReader(inv.stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// On cancellation, terminate rather than kill so the tool can
	// clean up; WaitDelay forces the kill if it does not exit.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = killGrace

	start := c.clock.Now()
	err := cmd.Run()
	duration := c.clock.Now().Sub(start)

	if err != nil && ctx.Err() != nil {
		fullCommand := append([]string{c.binary}, inv.args...)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Debug("invocation timed out",
				"command", fullCommand, "timeout", timeout)
			return nil, &TimeoutError{Command: fullCommand, Timeout: timeout}
		}
		return nil, fmt.Errorf("command %v canceled: %w", fullCommand, context.Cause(ctx))
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		// Exit code 0.
	case errors.As(err, &exitErr):
		// The tool ran and reported failure; surfaced via the result.
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, &ConnectionError{Binary: c.binary, Err: err}
	default:
		// Spawn-level failure of any other kind (fork/exec error).
		return nil, &ConnectionError{Binary: c.binary, Err: err}
	}

	res := &invocationResult{
		exitCode: cmd.ProcessState.ExitCode(),
		stdout:   stdout.Bytes(),
		stderr:   stderr.Bytes(),
		duration: duration,
	}
	c.logger.Debug("invocation complete",
		"command", append([]string{c.binary}, inv.args...),
		"exit_code", res.exitCode,
		"duration", res.duration)
	return res, nil
}

// runChecked executes an invocation and maps any non-zero exit through
// the error rules. The two outcomes are mutually exclusive: exit code
// zero always yields a result and never a typed error; a non-zero exit
// always yields a typed error and never a result.
func (c *Client) runChecked(ctx context.Context, inv *invocation) (*invocationResult, error) {
	res, err := c.run(ctx, inv)
	if err != nil {
		return nil, err
	}
	if res.exitCode != 0 {
		return nil, mapExitError(inv, res)
	}
	return res, nil
}

// parseFailure logs a parse mismatch with the raw output and returns
// the typed error. Parse errors are never retried and never coerced;
// the raw output is the diagnostic.
func (c *Client) parseFailure(message string, output []byte) error {
	c.logger.Error("unrecognized tool output", "message", message, "output", string(output))
	return &ParseError{Message: message, Output: output}
}
