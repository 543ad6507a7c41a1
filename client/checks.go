// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"strings"
)

// CheckLevel is a health check's level.
type CheckLevel string

const (
	UnsetLevel CheckLevel = ""
	AliveLevel CheckLevel = "alive"
	ReadyLevel CheckLevel = "ready"
)

// CheckStatus is a health check's current status.
type CheckStatus string

const (
	CheckStatusUp       CheckStatus = "up"
	CheckStatusDown     CheckStatus = "down"
	CheckStatusInactive CheckStatus = "inactive"
)

// CheckInfo describes one health check's state as reported by the
// checks listing. The socket API's failure count, change ID, and
// per-check thresholds are not exposed by the CLI.
type CheckInfo struct {
	Name   string
	Level  CheckLevel
	Status CheckStatus
}

// ChecksOptions selects which checks to report. Zero value reports all
// checks.
type ChecksOptions struct {
	// Level filters checks to one level when set.
	Level CheckLevel

	// Names filters checks by name when non-empty.
	Names []string
}

// Checks returns the status of the selected health checks.
func (c *Client) Checks(ctx context.Context, opts *ChecksOptions) ([]*CheckInfo, error) {
	args := []string{"checks"}
	var filter map[string]bool
	if opts != nil {
		if opts.Level != UnsetLevel {
			args = append(args, "--level", string(opts.Level))
		}
		if len(opts.Names) > 0 {
			filter = make(map[string]bool, len(opts.Names))
			for _, name := range opts.Names {
				filter[name] = true
			}
		}
	}

	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return nil, err
	}

	// Check        Level  Status  Failures  Change
	// demo-health  alive  up      0/3       -
	lines := outputLines(res.stdout)
	var checks []*CheckInfo
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if filter != nil && !filter[fields[0]] {
			continue
		}
		checks = append(checks, &CheckInfo{
			Name:   fields[0],
			Level:  CheckLevel(fields[1]),
			Status: CheckStatus(fields[2]),
		})
	}
	return checks, nil
}

// ChecksActionOptions holds the checks to act on for StartChecks and
// StopChecks.
type ChecksActionOptions struct {
	// Names is the list of checks to act on. Required.
	Names []string
}

// StartChecks starts the named checks.
//
// The returned list is the requested names: the CLI reports only
// success or failure, not which checks actually changed state, so all
// requested checks are assumed started. This is a documented
// approximation of the socket API's changed-checks response.
func (c *Client) StartChecks(ctx context.Context, opts *ChecksActionOptions) ([]string, error) {
	return c.checksAction(ctx, "start-checks", opts)
}

// StopChecks stops the named checks. The returned list carries the
// same approximation as StartChecks.
func (c *Client) StopChecks(ctx context.Context, opts *ChecksActionOptions) ([]string, error) {
	return c.checksAction(ctx, "stop-checks", opts)
}

func (c *Client) checksAction(ctx context.Context, action string, opts *ChecksActionOptions) ([]string, error) {
	if opts == nil {
		return nil, fmt.Errorf("options with a %s check list are required", action)
	}
	if err := validateNames("checks", opts.Names); err != nil {
		return nil, err
	}
	args := append([]string{action}, opts.Names...)
	if _, err := c.runChecked(ctx, &invocation{args: args}); err != nil {
		return nil, err
	}
	names := make([]string, len(opts.Names))
	copy(names, opts.Names)
	return names, nil
}
