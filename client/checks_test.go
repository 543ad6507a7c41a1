// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"slices"
	"testing"

	"github.com/shimmer-foundation/shimmer/lib/testutil"
)

const checksListing = `Check        Level  Status    Failures  Change
demo-health  alive  up        0/3       -
db-ready     ready  down      3/3       12 (cannot perform check)
maintenance  -      inactive  -         -`

func TestChecks(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `cat <<'EOF'
`+checksListing+`
EOF`)
	c := newTestClient(t, binary, nil)
	checks, err := c.Checks(context.Background(), nil)
	if err != nil {
		t.Fatalf("Checks: %v", err)
	}
	if len(checks) != 3 {
		t.Fatalf("got %d checks, want 3", len(checks))
	}
	if checks[0].Name != "demo-health" || checks[0].Level != AliveLevel || checks[0].Status != CheckStatusUp {
		t.Errorf("first check = %+v", checks[0])
	}
	if checks[1].Status != CheckStatusDown {
		t.Errorf("second check status = %q, want down", checks[1].Status)
	}
	if checks[2].Status != CheckStatusInactive {
		t.Errorf("third check status = %q, want inactive", checks[2].Status)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"checks"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestChecksLevelFlag(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `cat <<'EOF'
`+checksListing+`
EOF`)
	c := newTestClient(t, binary, nil)
	if _, err := c.Checks(context.Background(), &ChecksOptions{Level: ReadyLevel}); err != nil {
		t.Fatalf("Checks: %v", err)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"checks", "--level", "ready"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestChecksNameFilter(t *testing.T) {
	t.Parallel()
	binary := testutil.FakeTool(t, `cat <<'EOF'
`+checksListing+`
EOF`)
	c := newTestClient(t, binary, nil)
	checks, err := c.Checks(context.Background(), &ChecksOptions{Names: []string{"db-ready"}})
	if err != nil {
		t.Fatalf("Checks: %v", err)
	}
	if len(checks) != 1 || checks[0].Name != "db-ready" {
		t.Errorf("filtered checks = %+v, want just db-ready", checks)
	}
}

func TestStartChecksReturnsRequestedNames(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	names := []string{"demo-health", "db-ready"}
	started, err := c.StartChecks(context.Background(), &ChecksActionOptions{Names: names})
	if err != nil {
		t.Fatalf("StartChecks: %v", err)
	}
	if !slices.Equal(started, names) {
		t.Errorf("started = %v, want the requested names", started)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"start-checks", "demo-health", "db-ready"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestStopChecksArgv(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	if _, err := c.StopChecks(context.Background(), &ChecksActionOptions{Names: []string{"demo-health"}}); err != nil {
		t.Fatalf("StopChecks: %v", err)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"stop-checks", "demo-health"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestChecksActionValidatesBeforeSpawn(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	if _, err := c.StartChecks(context.Background(), nil); err == nil {
		t.Error("nil options accepted")
	}
	if _, err := c.StopChecks(context.Background(), &ChecksActionOptions{}); err == nil {
		t.Error("empty check list accepted")
	}
	if calls := testutil.RecordedArgs(t, record); calls != nil {
		t.Errorf("validation failures spawned processes: %v", calls)
	}
}
