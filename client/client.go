// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shimmer-foundation/shimmer/lib/clock"
)

const (
	// DefaultBinary is the tool name resolved via PATH when Config.Binary
	// is empty.
	DefaultBinary = "pebble"

	// DefaultTimeout bounds each invocation when Config.Timeout is zero.
	DefaultTimeout = 5 * time.Second
)

// Config holds the immutable configuration for a Client. The zero
// value is usable: it runs "pebble" from PATH with DefaultTimeout and
// the calling process's environment.
type Config struct {
	// Binary is the path or name of the tool binary.
	Binary string

	// SocketPath, when set, derives the PEBBLE and PEBBLE_SOCKET
	// environment variables for spawned processes: PEBBLE is the
	// socket's parent directory, PEBBLE_SOCKET the full path. The
	// calling process's own environment is never modified.
	SocketPath string

	// Timeout bounds each bounded-mode invocation. A per-operation
	// timeout, where the operation's options offer one, takes
	// precedence.
	Timeout time.Duration

	// Environment holds additional environment overrides for spawned
	// processes, applied after the socket-derived variables.
	Environment map[string]string

	// Logger receives invocation debug records and parse-failure
	// diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Clock is the time source for durations, timeouts, and polling
	// delays. Defaults to the real clock; tests inject a fake.
	Clock clock.Clock
}

// Client is the façade over the tool. One public method per socket
// client operation; each call composes its command, runs exactly one
// subprocess, and parses the output or maps the failure. Client is
// immutable after New and safe for concurrent use; concurrent calls
// share nothing but the configuration.
type Client struct {
	binary  string
	timeout time.Duration
	env     map[string]string
	logger  *slog.Logger
	clock   clock.Clock
}

// New creates a Client from config. The configuration is captured at
// construction; later mutation of the passed Config has no effect.
func New(config *Config) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	binary := config.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	env := make(map[string]string)
	if config.SocketPath != "" {
		if !filepath.IsAbs(config.SocketPath) {
			return nil, fmt.Errorf("socket path must be absolute, got %q", config.SocketPath)
		}
		env["PEBBLE"] = filepath.Dir(config.SocketPath)
		env["PEBBLE_SOCKET"] = config.SocketPath
	}
	for key, value := range config.Environment {
		if key == "" {
			return nil, fmt.Errorf("environment override with empty name")
		}
		env[key] = value
	}

	return &Client{
		binary:  binary,
		timeout: timeout,
		env:     env,
		logger:  logger,
		clock:   clk,
	}, nil
}

// processEnv builds the environment for one spawned process: the
// calling process's environment, the client's overrides, then any
// per-invocation overrides. Later entries win.
func (c *Client) processEnv(extra map[string]string) []string {
	merged := make(map[string]string)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			merged[key] = value
		}
	}
	for key, value := range c.env {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, key := range keys {
		env = append(env, key+"="+merged[key])
	}
	return env
}

// SysInfo holds system information about the service manager.
type SysInfo struct {
	// Version is the tool's client version string.
	Version string
}

// SysInfo returns system information. Only the version is available
// over the CLI transport ("version --client"); the socket API's boot
// ID is not exposed.
func (c *Client) SysInfo(ctx context.Context) (*SysInfo, error) {
	res, err := c.runChecked(ctx, &invocation{args: []string{"version", "--client"}})
	if err != nil {
		return nil, err
	}
	lines := outputLines(res.stdout)
	if len(lines) == 0 {
		return nil, c.parseFailure("version output is empty", res.stdout)
	}
	return &SysInfo{Version: strings.TrimSpace(lines[0])}, nil
}
