// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"time"
)

// ExecOptions holds the arguments for Exec.
type ExecOptions struct {
	// Command is the command to execute, argv-style. Required.
	Command []string

	// ServiceContext runs the command with the named service's
	// environment, user, group, and working directory as defaults.
	ServiceContext string

	// Environment holds extra environment variables for the command.
	Environment map[string]string

	// WorkingDir is the command's working directory.
	WorkingDir string

	// Timeout bounds the command's total runtime. It is both passed to
	// the tool and enforced locally in Wait: on expiry the process is
	// terminated (and killed after killGrace if it lingers) and Wait
	// returns *TimeoutError. Zero means no time bound; interactive
	// sessions run until the command exits or ctx is canceled.
	Timeout time.Duration

	UserID  *int
	User    string
	GroupID *int
	Group   string

	// Stdin supplies the command's input. When nil, ExecProcess.Stdin is
	// a pipe the caller writes to (and must close to signal EOF).
	Stdin io.Reader

	// Stdout receives the command's output. When nil,
	// ExecProcess.Stdout is a pipe the caller reads from.
	Stdout io.Writer

	// Stderr receives the command's error output. When nil,
	// ExecProcess.Stderr is a pipe unless CombineStderr is set.
	Stderr io.Writer

	// CombineStderr merges the command's stderr into its stdout stream.
	// Incompatible with a non-nil Stderr.
	CombineStderr bool
}

// ExecProcess is a running command started by Exec. It is the
// interactive counterpart to the bounded one-shot invocations: the
// caller owns the streams and decides when the session ends.
type ExecProcess struct {
	// Stdin is a pipe to the command's input when ExecOptions.Stdin was
	// nil, otherwise nil. Callers must close it to deliver EOF.
	Stdin io.WriteCloser

	// Stdout is a pipe from the command's output when
	// ExecOptions.Stdout was nil, otherwise nil.
	Stdout io.Reader

	// Stderr is a pipe from the command's error output when
	// ExecOptions.Stderr was nil and CombineStderr was unset, otherwise
	// nil.
	Stderr io.Reader

	client  *Client
	cmd     *exec.Cmd
	command []string
	timeout time.Duration
	ctx     context.Context

	// done is closed once cmd.Wait has returned and procErr is set.
	done     chan struct{}
	procErr  error
	waitOnce sync.Once
	waitErr  error
}

// Exec starts a command on the managed system and returns the running
// process. The call returns as soon as the process has been spawned;
// completion is observed via Wait or WaitOutput.
//
// Spawn failures (binary missing, fork error) return *ConnectionError.
func (c *Client) Exec(ctx context.Context, opts *ExecOptions) (*ExecProcess, error) {
	if opts == nil || len(opts.Command) == 0 {
		return nil, fmt.Errorf("command is required")
	}
	if opts.Command[0] == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}
	if opts.CombineStderr && opts.Stderr != nil {
		return nil, fmt.Errorf("CombineStderr cannot be used with a stderr writer")
	}

	args := []string{"exec"}
	if opts.ServiceContext != "" {
		args = append(args, "--context", opts.ServiceContext)
	}
	if opts.WorkingDir != "" {
		args = append(args, "-w", opts.WorkingDir)
	}
	if opts.Timeout > 0 {
		args = append(args, "--timeout", strconv.FormatFloat(opts.Timeout.Seconds(), 'g', -1, 64)+"s")
	}
	args = ownerArgs(args, opts.User, opts.UserID, opts.Group, opts.GroupID)
	names := make([]string, 0, len(opts.Environment))
	for name := range opts.Environment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "--env", name+"="+opts.Environment[name])
	}
	args = append(args, "--")
	args = append(args, opts.Command...)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Env = c.processEnv(nil)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = killGrace

	process := &ExecProcess{
		client:  c,
		cmd:     cmd,
		command: opts.Command,
		timeout: opts.Timeout,
		ctx:     ctx,
		done:    make(chan struct{}),
	}

	// childEnds are the pipe ends that belong to the child; the parent
	// closes them after Start so the caller-facing ends see EOF.
	var childEnds []*os.File
	closeChildEnds := func() {
		for _, end := range childEnds {
			end.Close()
		}
	}

	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	} else {
		readEnd, writeEnd, err := os.Pipe()
		if err != nil {
			return nil, &ConnectionError{Binary: c.binary, Err: err}
		}
		cmd.Stdin = readEnd
		childEnds = append(childEnds, readEnd)
		process.Stdin = writeEnd
	}
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	} else {
		readEnd, writeEnd, err := os.Pipe()
		if err != nil {
			closeChildEnds()
			return nil, &ConnectionError{Binary: c.binary, Err: err}
		}
		cmd.Stdout = writeEnd
		childEnds = append(childEnds, writeEnd)
		process.Stdout = readEnd
	}
	switch {
	case opts.CombineStderr:
		cmd.Stderr = cmd.Stdout
	case opts.Stderr != nil:
		cmd.Stderr = opts.Stderr
	default:
		readEnd, writeEnd, err := os.Pipe()
		if err != nil {
			closeChildEnds()
			return nil, &ConnectionError{Binary: c.binary, Err: err}
		}
		cmd.Stderr = writeEnd
		childEnds = append(childEnds, writeEnd)
		process.Stderr = readEnd
	}

	if err := cmd.Start(); err != nil {
		closeChildEnds()
		return nil, &ConnectionError{Binary: c.binary, Err: err}
	}
	// The child holds its own descriptors now; the parent's copies must
	// go so the caller-facing pipe ends reach EOF when the child exits.
	closeChildEnds()

	c.logger.Debug("interactive session started",
		"command", opts.Command, "pid", cmd.Process.Pid)

	go func() {
		process.procErr = cmd.Wait()
		close(process.done)
	}()
	return process, nil
}

// Wait blocks until the command exits. A non-zero exit returns
// *ExecError; exceeding ExecOptions.Timeout returns *TimeoutError after
// the process has been terminated. Wait is idempotent; repeated calls
// return the same result.
//
// Callers reading Stdout or Stderr should drain them before Wait, or
// use WaitOutput.
func (p *ExecProcess) Wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.wait()
	})
	return p.waitErr
}

func (p *ExecProcess) wait() error {
	var expired <-chan time.Time
	if p.timeout > 0 {
		expired = p.client.clock.After(p.timeout)
	}
	select {
	case <-p.done:
		return p.exitResult()
	case <-expired:
	}

	// Timed out: terminate, give the grace period, then force the kill.
	_ = p.cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-p.done:
	case <-p.client.clock.After(killGrace):
		_ = p.cmd.Process.Kill()
		<-p.done
	}
	fullCommand := append([]string{p.client.binary}, p.cmd.Args[1:]...)
	p.client.logger.Debug("interactive session timed out",
		"command", p.command, "timeout", p.timeout)
	return &TimeoutError{Command: fullCommand, Timeout: p.timeout}
}

// exitResult maps the finished process's state to the typed errors.
func (p *ExecProcess) exitResult() error {
	err := p.procErr
	if err == nil {
		return nil
	}
	if ctxErr := p.ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return &TimeoutError{
				Command: append([]string{p.client.binary}, p.cmd.Args[1:]...),
				Timeout: p.timeout,
			}
		}
		return fmt.Errorf("command %v canceled: %w", p.command, context.Cause(p.ctx))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExecError{Command: p.command, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("wait for command %v: %w", p.command, err)
}

// WaitOutput drains the process's stdout and stderr pipes, then waits
// for it to exit, returning the collected output. On non-zero exit the
// output is also attached to the returned *ExecError.
//
// WaitOutput requires the pipes Exec creates when no writers were
// supplied. Callers that wrote to Stdin must close it first, or the
// command may never see EOF.
func (p *ExecProcess) WaitOutput() ([]byte, []byte, error) {
	if p.Stdout == nil {
		return nil, nil, fmt.Errorf("WaitOutput requires the process's stdout pipe; a stdout writer was supplied")
	}

	var stdout, stderr []byte
	var stdoutErr, stderrErr error
	var readers sync.WaitGroup
	readers.Add(1)
	go func() {
		defer readers.Done()
		stdout, stdoutErr = io.ReadAll(p.Stdout)
	}()
	if p.Stderr != nil {
		readers.Add(1)
		go func() {
			defer readers.Done()
			stderr, stderrErr = io.ReadAll(p.Stderr)
		}()
	}
	readers.Wait()

	err := p.Wait()
	var execErr *ExecError
	if errors.As(err, &execErr) {
		execErr.Stdout = stdout
		execErr.Stderr = stderr
	}
	if err == nil && stdoutErr != nil {
		err = fmt.Errorf("read command output: %w", stdoutErr)
	}
	if err == nil && stderrErr != nil {
		err = fmt.Errorf("read command error output: %w", stderrErr)
	}
	return stdout, stderr, err
}

// SendSignal delivers the named signal ("SIGINT" or "INT") to the
// session. The signal lands on the local tool process, which forwards
// it to the remote command.
func (p *ExecProcess) SendSignal(signal string) error {
	num, err := signalFromName(signal)
	if err != nil {
		return err
	}
	select {
	case <-p.done:
		return fmt.Errorf("command %v has already exited", p.command)
	default:
	}
	if err := p.cmd.Process.Signal(num); err != nil {
		return fmt.Errorf("send %s to command %v: %w", signal, p.command, err)
	}
	return nil
}
