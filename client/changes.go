// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"time"
)

// ChangeID identifies one change (a state transition request and its
// task set) in the service manager.
type ChangeID string

// UnknownChangeID is the sentinel returned by bounded-mode service
// actions: the CLI only reports the created change's ID in NoWait
// mode, so after a blocking action the ID is not available. This is a
// first-class limitation of the CLI transport.
const UnknownChangeID ChangeID = "?"

// ChangeSelector selects which changes a Changes call reports.
type ChangeSelector string

const (
	ChangesInProgress ChangeSelector = "in-progress"
	ChangesReady      ChangeSelector = "ready"
	ChangesAll        ChangeSelector = "all"
)

// Change describes one change from the changes listing.
//
// The CLI listing exposes strictly less than the socket API: Kind,
// Tasks, and Err are never available and hold their explicit absent
// sentinels rather than guessed values.
type Change struct {
	ID ChangeID

	// Kind is always "unknown": the listing does not carry it.
	Kind string

	Summary string
	Status  string

	// Ready is approximate: it is inferred from Status being "Done" or
	// "Error", because the listing has no readiness field. Treat it as
	// best-effort, not authoritative.
	Ready bool

	// Err is always empty: task errors are not in the listing.
	Err string

	SpawnTime time.Time

	// ReadyTime is nil while the Ready column shows no timestamp.
	ReadyTime *time.Time
}

// ChangesOptions selects which changes to report.
type ChangesOptions struct {
	// Selector defaults to the tool's own default (in-progress) when
	// empty.
	Selector ChangeSelector

	// Service exists for socket-client signature compatibility and is
	// ignored: the CLI has no per-service change filter.
	Service string
}

// noChangesOutput is the exact line the tool prints when no changes
// match.
const noChangesOutput = "No changes."

var changeColumns = []string{"ID", "Status", "Spawn", "Ready", "Summary"}

// Changes returns the changes matching the selector, newest last, in
// the order the tool reports them.
func (c *Client) Changes(ctx context.Context, opts *ChangesOptions) ([]*Change, error) {
	args := []string{"changes", "--abs-time"}
	if opts != nil && opts.Selector != "" {
		args = append(args, "--select", string(opts.Selector))
	}
	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return nil, err
	}

	// ID   Status  Spawn                 Ready                 Summary
	// 1    Error   2025-07-12T06:49:22Z  2025-07-12T06:50:52Z  Perform HTTP check "demo-health"
	lines := outputLines(res.stdout)
	if len(lines) == 0 || lines[0] == noChangesOutput {
		return nil, nil
	}
	starts, err := columnIndexes(lines[0], changeColumns)
	if err != nil {
		return nil, c.parseFailure(fmt.Sprintf("changes listing: %v", err), res.stdout)
	}

	var changes []*Change
	for _, line := range lines[1:] {
		cells := sliceColumns(line, starts)
		spawnTime, err := parseAbsTime(cells[2])
		if err != nil {
			return nil, c.parseFailure(fmt.Sprintf("changes listing line %q: %v", line, err), res.stdout)
		}
		change := &Change{
			ID:        ChangeID(cells[0]),
			Kind:      "unknown",
			Status:    cells[1],
			Ready:     cells[1] == "Done" || cells[1] == "Error",
			SpawnTime: spawnTime,
			Summary:   cells[4],
		}
		if readyTime, err := parseAbsTime(cells[3]); err == nil {
			change.ReadyTime = &readyTime
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// WaitChangeOptions configures WaitChange polling.
type WaitChangeOptions struct {
	// Timeout bounds the whole wait. Zero waits until ctx is done.
	Timeout time.Duration

	// Delay is the polling interval. Defaults to 100ms.
	Delay time.Duration
}

// WaitChange waits for the change with the given ID to become ready,
// polling the changes listing.
//
// The CLI has no wait primitive and no readiness field, so this is
// best-effort on two axes: completion is detected via the approximate
// Change.Ready inference, and resolution is bounded by the polling
// delay. The final Change carries the listing's limitations (no Kind,
// Tasks, or Err).
func (c *Client) WaitChange(ctx context.Context, id ChangeID, opts *WaitChangeOptions) (*Change, error) {
	if id == "" || id == UnknownChangeID {
		return nil, fmt.Errorf("change ID %q cannot be waited on", id)
	}
	delay := 100 * time.Millisecond
	var timeout time.Duration
	if opts != nil {
		if opts.Delay > 0 {
			delay = opts.Delay
		}
		timeout = opts.Timeout
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = c.clock.Now().Add(timeout)
	}
	for {
		changes, err := c.Changes(ctx, &ChangesOptions{Selector: ChangesAll})
		if err != nil {
			return nil, err
		}
		for _, change := range changes {
			if change.ID == id && change.Ready {
				return change, nil
			}
		}
		if !deadline.IsZero() && !c.clock.Now().Before(deadline) {
			return nil, &TimeoutError{Command: []string{c.binary, "changes"}, Timeout: timeout}
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for change %s: %w", id, ctx.Err())
		case <-c.clock.After(delay):
		}
	}
}
