// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// ServiceStartup is a service's startup configuration.
type ServiceStartup string

const (
	StartupEnabled  ServiceStartup = "enabled"
	StartupDisabled ServiceStartup = "disabled"
)

// ServiceStatus is a service's current status.
type ServiceStatus string

const (
	StatusActive   ServiceStatus = "active"
	StatusInactive ServiceStatus = "inactive"
	StatusBackoff  ServiceStatus = "backoff"
	StatusError    ServiceStatus = "error"
)

// ServiceInfo describes one service's state as reported by the
// services listing. The socket API's per-service current change ID is
// not exposed by the CLI.
type ServiceInfo struct {
	Name    string
	Startup ServiceStartup
	Current ServiceStatus
}

// ServicesOptions selects which services to report. An empty Names
// reports all services.
type ServicesOptions struct {
	Names []string
}

// noServicesOutput is the exact line the tool prints when the plan has
// no services.
const noServicesOutput = "Plan has no services."

// Services returns the status of the named services, or of all
// services when opts is nil or opts.Names is empty.
func (c *Client) Services(ctx context.Context, opts *ServicesOptions) ([]*ServiceInfo, error) {
	var filter map[string]bool
	if opts != nil && len(opts.Names) > 0 {
		filter = make(map[string]bool, len(opts.Names))
		for _, name := range opts.Names {
			filter[name] = true
		}
	}

	res, err := c.runChecked(ctx, &invocation{args: []string{"services", "--abs-time"}})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(res.stdout)) == noServicesOutput {
		return nil, nil
	}

	// Service      Startup  Current  Since
	// demo-server  enabled  active   2025-07-12T06:55:57Z
	lines := outputLines(res.stdout)
	if len(lines) == 0 {
		return nil, c.parseFailure("services listing has no header", res.stdout)
	}
	var services []*ServiceInfo
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if filter != nil && !filter[fields[0]] {
			continue
		}
		services = append(services, &ServiceInfo{
			Name:    fields[0],
			Startup: ServiceStartup(fields[1]),
			Current: ServiceStatus(fields[2]),
		})
	}
	return services, nil
}

// ServiceOptions holds the services to act on for Start, Stop, and
// Restart.
type ServiceOptions struct {
	// Names is the list of services to act on. Required.
	Names []string

	// NoWait makes the tool report the created change ID immediately
	// instead of waiting for the change to complete. This is the only
	// mode in which the real change ID is available; without it the
	// call blocks until the change finishes and returns
	// UnknownChangeID.
	NoWait bool
}

// Start starts the named services. See ServiceOptions.NoWait for the
// change ID limitation of the CLI transport.
func (c *Client) Start(ctx context.Context, opts *ServiceOptions) (ChangeID, error) {
	return c.serviceAction(ctx, "start", opts)
}

// Stop stops the named services. See ServiceOptions.NoWait for the
// change ID limitation of the CLI transport.
func (c *Client) Stop(ctx context.Context, opts *ServiceOptions) (ChangeID, error) {
	return c.serviceAction(ctx, "stop", opts)
}

// Restart restarts the named services. See ServiceOptions.NoWait for
// the change ID limitation of the CLI transport.
func (c *Client) Restart(ctx context.Context, opts *ServiceOptions) (ChangeID, error) {
	return c.serviceAction(ctx, "restart", opts)
}

func (c *Client) serviceAction(ctx context.Context, action string, opts *ServiceOptions) (ChangeID, error) {
	if opts == nil {
		return "", fmt.Errorf("options with a %s service list are required", action)
	}
	if err := validateNames("services", opts.Names); err != nil {
		return "", err
	}
	args := append([]string{action}, opts.Names...)
	if opts.NoWait {
		args = append(args, "--no-wait")
	}
	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return "", err
	}
	if opts.NoWait {
		return ChangeID(strings.TrimSpace(string(res.stdout))), nil
	}
	return UnknownChangeID, nil
}

// ReplanOptions configures Replan and AutoStart.
type ReplanOptions struct {
	// NoWait makes the tool report the created change ID immediately.
	// See ServiceOptions.NoWait.
	NoWait bool
}

// Replan aligns running services with the current plan: services whose
// configuration changed are restarted, newly enabled ones started.
func (c *Client) Replan(ctx context.Context, opts *ReplanOptions) (ChangeID, error) {
	args := []string{"replan"}
	noWait := opts != nil && opts.NoWait
	if noWait {
		args = append(args, "--no-wait")
	}
	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return "", err
	}
	if noWait {
		return ChangeID(strings.TrimSpace(string(res.stdout))), nil
	}
	return UnknownChangeID, nil
}

// AutoStart starts all startup-enabled services.
//
// The CLI has no direct autostart subcommand, so this delegates to
// Replan, which also starts enabled services. The resulting change may
// additionally restart services whose configuration changed; a
// documented behavioral approximation of the socket API.
func (c *Client) AutoStart(ctx context.Context, opts *ReplanOptions) (ChangeID, error) {
	return c.Replan(ctx, opts)
}

// SendSignalOptions holds the arguments for SendSignal.
type SendSignalOptions struct {
	// Signal is the signal name, with or without the "SIG" prefix
	// ("SIGHUP" or "HUP").
	Signal string

	// Services is the list of services to signal. Required.
	Services []string
}

// SendSignal sends a signal to each of the named running services.
func (c *Client) SendSignal(ctx context.Context, opts *SendSignalOptions) error {
	if opts == nil {
		return fmt.Errorf("options with a signal and service list are required")
	}
	if err := validateNames("services", opts.Services); err != nil {
		return err
	}
	name, err := normalizeSignal(opts.Signal)
	if err != nil {
		return err
	}
	args := append([]string{"signal", name}, opts.Services...)
	_, err = c.runChecked(ctx, &invocation{args: args})
	return err
}

// normalizeSignal validates a signal name and strips the "SIG" prefix,
// which is how the tool's signal subcommand expects it.
func normalizeSignal(signal string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(signal))
	if name == "" {
		return "", fmt.Errorf("signal name is required")
	}
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	if unix.SignalNum(name) == syscall.Signal(0) {
		return "", fmt.Errorf("invalid signal name: %q", signal)
	}
	return strings.TrimPrefix(name, "SIG"), nil
}

// signalFromName resolves a signal name (with or without the "SIG"
// prefix) to the numeric signal, for delivery to a local process.
func signalFromName(signal string) (syscall.Signal, error) {
	name := strings.ToUpper(strings.TrimSpace(signal))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	num := unix.SignalNum(name)
	if num == syscall.Signal(0) {
		return 0, fmt.Errorf("invalid signal name: %q", signal)
	}
	return num, nil
}
