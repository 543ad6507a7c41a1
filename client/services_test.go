// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"slices"
	"testing"

	"github.com/shimmer-foundation/shimmer/lib/testutil"
)

const servicesListing = `Service      Startup   Current   Since
demo-server  enabled   active    2025-07-12T06:55:57Z
worker       disabled  inactive  -
flaky        enabled   backoff   2025-07-12T07:01:12Z`

func TestServices(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `cat <<'EOF'
`+servicesListing+`
EOF`)
	c := newTestClient(t, binary, nil)
	services, err := c.Services(context.Background(), nil)
	if err != nil {
		t.Fatalf("Services: %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("got %d services, want 3", len(services))
	}
	if services[0].Name != "demo-server" || services[0].Startup != StartupEnabled || services[0].Current != StatusActive {
		t.Errorf("first service = %+v", services[0])
	}
	if services[2].Current != StatusBackoff {
		t.Errorf("third service status = %q, want backoff", services[2].Current)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"services", "--abs-time"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestServicesNameFilter(t *testing.T) {
	t.Parallel()
	binary := testutil.FakeTool(t, `cat <<'EOF'
`+servicesListing+`
EOF`)
	c := newTestClient(t, binary, nil)
	services, err := c.Services(context.Background(), &ServicesOptions{Names: []string{"worker"}})
	if err != nil {
		t.Fatalf("Services: %v", err)
	}
	if len(services) != 1 || services[0].Name != "worker" {
		t.Errorf("filtered services = %+v, want just worker", services)
	}
}

func TestServicesEmptyPlan(t *testing.T) {
	t.Parallel()
	binary := testutil.FakeTool(t, `echo "Plan has no services."`)
	c := newTestClient(t, binary, nil)
	services, err := c.Services(context.Background(), nil)
	if err != nil {
		t.Fatalf("Services: %v", err)
	}
	if services != nil {
		t.Errorf("services = %+v, want nil", services)
	}
}

func TestStartNoWaitReturnsChangeID(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `echo "42"`)
	c := newTestClient(t, binary, nil)
	id, err := c.Start(context.Background(), &ServiceOptions{
		Names:  []string{"web", "db"},
		NoWait: true,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if id != ChangeID("42") {
		t.Errorf("change ID = %q, want %q", id, "42")
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"start", "web", "db", "--no-wait"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestStopBlockingReturnsUnknownChangeID(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	id, err := c.Stop(context.Background(), &ServiceOptions{Names: []string{"web"}})
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if id != UnknownChangeID {
		t.Errorf("change ID = %q, want the unknown sentinel", id)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"stop", "web"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestServiceActionValidatesBeforeSpawn(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)

	if _, err := c.Restart(context.Background(), nil); err == nil {
		t.Error("nil options accepted")
	}
	if _, err := c.Restart(context.Background(), &ServiceOptions{}); err == nil {
		t.Error("empty service list accepted")
	}
	if _, err := c.Restart(context.Background(), &ServiceOptions{Names: []string{"web", ""}}); err == nil {
		t.Error("empty service name accepted")
	}
	if calls := testutil.RecordedArgs(t, record); calls != nil {
		t.Errorf("validation failures spawned processes: %v", calls)
	}
}

func TestReplanNoWait(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `echo "7"`)
	c := newTestClient(t, binary, nil)
	id, err := c.Replan(context.Background(), &ReplanOptions{NoWait: true})
	if err != nil {
		t.Fatalf("Replan: %v", err)
	}
	if id != ChangeID("7") {
		t.Errorf("change ID = %q, want %q", id, "7")
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"replan", "--no-wait"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestAutoStartDelegatesToReplan(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	id, err := c.AutoStart(context.Background(), nil)
	if err != nil {
		t.Fatalf("AutoStart: %v", err)
	}
	if id != UnknownChangeID {
		t.Errorf("change ID = %q, want the unknown sentinel", id)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"replan"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestSendSignal(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	err := c.SendSignal(context.Background(), &SendSignalOptions{
		Signal:   "SIGHUP",
		Services: []string{"web", "worker"},
	})
	if err != nil {
		t.Fatalf("SendSignal: %v", err)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"signal", "HUP", "web", "worker"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestNormalizeSignal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"SIGHUP", "HUP"},
		{"HUP", "HUP"},
		{"int", "INT"},
		{" term ", "TERM"},
	}
	for _, test := range tests {
		got, err := normalizeSignal(test.input)
		if err != nil {
			t.Errorf("normalizeSignal(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("normalizeSignal(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSendSignalInvalidNameNoSpawn(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	err := c.SendSignal(context.Background(), &SendSignalOptions{
		Signal:   "NOTASIGNAL",
		Services: []string{"web"},
	})
	if err == nil {
		t.Fatal("invalid signal name accepted")
	}
	if calls := testutil.RecordedArgs(t, record); calls != nil {
		t.Errorf("invalid signal spawned a process: %v", calls)
	}
}
