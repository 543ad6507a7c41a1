// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ConnectionError reports that the external tool could not be located
// or spawned, or that the tool itself could not reach the daemon. It is
// the CLI-transport equivalent of a failed socket connection.
type ConnectionError struct {
	// Binary is the tool path the client attempted to run.
	Binary string

	// Message is the failure description, taken from the tool's stderr
	// when the tool ran but could not reach the daemon.
	Message string

	// Err is the underlying spawn error, if any.
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot connect via %s: %v", e.Binary, e.Err)
	}
	return fmt.Sprintf("cannot connect via %s: %s", e.Binary, e.Message)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError reports that a bounded-mode invocation (or an
// ExecProcess wait) exceeded its deadline. The subprocess has been
// terminated by the time the error is returned.
type TimeoutError struct {
	// Command is the full argument vector that timed out, including
	// the binary name.
	Command []string

	// Timeout is the deadline that was exceeded.
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %v", strings.Join(e.Command, " "), e.Timeout)
}

// APIError reports an operation the tool rejected. It carries the
// process exit code and the stderr text so a failure can be diagnosed
// without re-running the tool.
type APIError struct {
	// Code is the tool's exit code.
	Code int

	// Status is a short classification of the failure.
	Status string

	// Message is the stderr text emitted by the tool, trimmed.
	Message string
}

func (e *APIError) Error() string { return e.Message }

// PathError reports a filesystem operation failure, with the affected
// path extracted from the tool's error text.
type PathError struct {
	// Kind names the failure: "not-found", "permission-denied",
	// "generic-file-error".
	Kind string

	// Path is the affected path, when it could be extracted.
	Path string

	// Message is the tool's full error text, trimmed.
	Message string
}

func (e *PathError) Error() string { return e.Message }

// ParseError reports that the tool's output did not match any known
// shape. This is a contract error between the client and the tool
// version it targets; it is never coerced into a plausible-looking
// result. The raw output is retained for diagnosis.
type ParseError struct {
	// Message describes what shape was expected.
	Message string

	// Output is the raw stdout that failed to parse.
	Output []byte
}

func (e *ParseError) Error() string { return e.Message }

// ExecError reports that a command started via Exec finished with a
// non-zero exit code.
type ExecError struct {
	// Command is the executed command, as passed to Exec.
	Command []string

	// ExitCode is the command's exit code.
	ExitCode int

	// Stdout and Stderr hold any output collected before the failure
	// was observed. Empty when the caller streamed output elsewhere.
	Stdout []byte
	Stderr []byte
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", strings.Join(e.Command, " "), e.ExitCode)
}

// UnsupportedError reports an operation the CLI surface cannot express.
// The socket API supports it; this transport does not.
type UnsupportedError struct {
	// Op is the operation name.
	Op string

	// Reason explains the gap.
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported by the CLI transport: %s", e.Op, e.Reason)
}

// errorRule maps a stderr pattern to a typed error constructor. The
// tool has no structured error channel, so classification is an
// ordered, best-effort match over known error phrases. New phrases are
// added here as new rules, never as conditionals at call sites.
type errorRule struct {
	pattern *regexp.Regexp
	build   func(match []string, inv *invocation, res *invocationResult) error
}

var exitRules = []errorRule{
	// The tool ran but could not reach its daemon.
	{
		pattern: regexp.MustCompile(`cannot connect to|connection refused|daemon is not running|socket .*no such file`),
		build: func(match []string, inv *invocation, res *invocationResult) error {
			return &ConnectionError{Message: stderrText(res)}
		},
	},
	// Filesystem failures carry the path, usually quoted, followed by
	// the errno text.
	{
		pattern: regexp.MustCompile(`"([^"]+)": no such file or directory|([^\s"]+): no such file or directory`),
		build: func(match []string, inv *invocation, res *invocationResult) error {
			return &PathError{Kind: "not-found", Path: firstSubmatch(match), Message: stderrText(res)}
		},
	},
	{
		pattern: regexp.MustCompile(`"([^"]+)": permission denied|([^\s"]+): permission denied`),
		build: func(match []string, inv *invocation, res *invocationResult) error {
			return &PathError{Kind: "permission-denied", Path: firstSubmatch(match), Message: stderrText(res)}
		},
	},
	{
		pattern: regexp.MustCompile(`"([^"]+)": (?:not a directory|directory not empty|file exists|is a directory)`),
		build: func(match []string, inv *invocation, res *invocationResult) error {
			return &PathError{Kind: "generic-file-error", Path: firstSubmatch(match), Message: stderrText(res)}
		},
	},
	// Unknown object names get a distinct status so callers matching on
	// not-found semantics do not need to parse the message themselves.
	{
		pattern: regexp.MustCompile(`cannot find (?:service|check|layer|notice|change)`),
		build: func(match []string, inv *invocation, res *invocationResult) error {
			return &APIError{Code: res.exitCode, Status: "Not Found", Message: stderrText(res)}
		},
	},
}

// mapExitError classifies a non-zero invocation result into the typed
// error hierarchy. The documented fallback is an APIError preserving
// the raw stderr.
func mapExitError(inv *invocation, res *invocationResult) error {
	stderr := stderrText(res)
	for _, rule := range exitRules {
		if match := rule.pattern.FindStringSubmatch(stderr); match != nil {
			return rule.build(match, inv, res)
		}
	}
	return &APIError{Code: res.exitCode, Status: "Command Failed", Message: stderr}
}

// stderrText returns the trimmed stderr of a result, falling back to
// stdout when stderr is empty (some subcommands report errors there).
func stderrText(res *invocationResult) string {
	text := strings.TrimSpace(string(res.stderr))
	if text == "" {
		text = strings.TrimSpace(string(res.stdout))
	}
	if text == "" {
		text = fmt.Sprintf("command failed with exit code %d", res.exitCode)
	}
	return text
}

// firstSubmatch returns the first non-empty capture group of a match.
func firstSubmatch(match []string) string {
	for _, group := range match[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}
