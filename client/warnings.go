// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"strings"
	"time"
)

// WarningState selects which warnings a Warnings call reports.
type WarningState string

const (
	PendingWarnings WarningState = "pending"
	AllWarnings     WarningState = "all"
)

// Warning describes one warning, mirroring the socket client's shape.
type Warning struct {
	Message     string
	FirstAdded  time.Time
	LastAdded   time.Time
	LastShown   *time.Time
	ExpireAfter time.Duration
	RepeatAfter time.Duration
}

// WarningsOptions selects which warnings to report.
type WarningsOptions struct {
	Select WarningState
}

// noWarningsOutput is the exact line the tool prints when no warnings
// match.
const noWarningsOutput = "No warnings."

// Warnings returns warnings matching the selector.
//
// Only the empty case is supported: the tool's warnings rendering has
// no stable parseable shape, so a non-empty listing returns
// *UnsupportedError rather than a lossy guess.
func (c *Client) Warnings(ctx context.Context, opts *WarningsOptions) ([]*Warning, error) {
	args := []string{"warnings"}
	if opts != nil && opts.Select != "" {
		args = append(args, "--select", string(opts.Select))
	}
	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(res.stdout)) == noWarningsOutput {
		return nil, nil
	}
	return nil, &UnsupportedError{
		Op:     "Warnings",
		Reason: "the tool's warning listing has no stable parseable format",
	}
}

// AckWarnings acknowledges all warnings last listed at or before
// timestamp. The CLI exposes no acknowledgment operation, so this
// always returns *UnsupportedError.
func (c *Client) AckWarnings(ctx context.Context, timestamp time.Time) (int, error) {
	return 0, &UnsupportedError{
		Op:     "AckWarnings",
		Reason: "the tool has no warning acknowledgment subcommand",
	}
}
