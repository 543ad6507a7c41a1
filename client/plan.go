// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Plan is the service manager's combined configuration: all layers
// merged in order.
type Plan struct {
	Services   map[string]*Service   `yaml:"services,omitempty"`
	Checks     map[string]*Check     `yaml:"checks,omitempty"`
	LogTargets map[string]*LogTarget `yaml:"log-targets,omitempty"`
}

// Service is one service's configuration within a plan or layer.
type Service struct {
	Override    string            `yaml:"override,omitempty"`
	Summary     string            `yaml:"summary,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Command     string            `yaml:"command,omitempty"`
	Startup     ServiceStartup    `yaml:"startup,omitempty"`
	After       []string          `yaml:"after,omitempty"`
	Before      []string          `yaml:"before,omitempty"`
	Requires    []string          `yaml:"requires,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	UserID      *int              `yaml:"user-id,omitempty"`
	User        string            `yaml:"user,omitempty"`
	GroupID     *int              `yaml:"group-id,omitempty"`
	Group       string            `yaml:"group,omitempty"`
	WorkingDir  string            `yaml:"working-dir,omitempty"`
}

// Check is one health check's configuration within a plan or layer.
type Check struct {
	Override  string     `yaml:"override,omitempty"`
	Level     CheckLevel `yaml:"level,omitempty"`
	Period    string     `yaml:"period,omitempty"`
	Timeout   string     `yaml:"timeout,omitempty"`
	Threshold int        `yaml:"threshold,omitempty"`
	HTTP      *HTTPCheck `yaml:"http,omitempty"`
	TCP       *TCPCheck  `yaml:"tcp,omitempty"`
	Exec      *ExecCheck `yaml:"exec,omitempty"`
}

// HTTPCheck configures an HTTP health check.
type HTTPCheck struct {
	URL     string            `yaml:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// TCPCheck configures a TCP port health check.
type TCPCheck struct {
	Port int    `yaml:"port,omitempty"`
	Host string `yaml:"host,omitempty"`
}

// ExecCheck configures a command health check.
type ExecCheck struct {
	Command     string            `yaml:"command,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	WorkingDir  string            `yaml:"working-dir,omitempty"`
}

// LogTarget is one log forwarding target's configuration.
type LogTarget struct {
	Override string   `yaml:"override,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Location string   `yaml:"location,omitempty"`
	Services []string `yaml:"services,omitempty"`
}

// AddLayerOptions holds the arguments for AddLayer.
type AddLayerOptions struct {
	// Label identifies the layer. Required.
	Label string

	// LayerData is the layer's YAML content. Required, and validated
	// before the tool is invoked.
	LayerData []byte

	// Combine merges the layer into an existing layer with the same
	// label instead of rejecting the duplicate.
	Combine bool
}

// AddLayer adds a configuration layer to the plan's layer stack. The
// layer content is passed to the tool through a temporary file, never
// embedded in the argument vector; the file is removed on every path.
func (c *Client) AddLayer(ctx context.Context, opts *AddLayerOptions) error {
	if opts == nil || opts.Label == "" {
		return fmt.Errorf("layer label is required")
	}
	if len(opts.LayerData) == 0 {
		return fmt.Errorf("layer data is required")
	}
	// Catch malformed layers before a process is spawned.
	var probe map[string]any
	if err := yaml.Unmarshal(opts.LayerData, &probe); err != nil {
		return fmt.Errorf("layer data is not valid YAML: %w", err)
	}

	path, cleanup, err := writeTempFile("layer-*.yaml", opts.LayerData)
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{"add", opts.Label, path}
	if opts.Combine {
		args = append(args, "--combine")
	}
	_, err = c.runChecked(ctx, &invocation{args: args})
	return err
}

// PlanBytes returns the effective plan as raw YAML, exactly as the
// tool renders it.
func (c *Client) PlanBytes(ctx context.Context) ([]byte, error) {
	res, err := c.runChecked(ctx, &invocation{args: []string{"plan"}})
	if err != nil {
		return nil, err
	}
	return res.stdout, nil
}

// Plan returns the effective plan decoded into typed configuration.
func (c *Client) Plan(ctx context.Context) (*Plan, error) {
	data, err := c.PlanBytes(ctx)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, c.parseFailure(fmt.Sprintf("plan is not valid YAML: %v", err), data)
	}
	return &plan, nil
}

// writeTempFile writes data to a fresh temporary file and returns its
// path with a cleanup function. Used for payloads the tool only
// accepts as file arguments (layers, identity files, pushed content).
func writeTempFile(pattern string, data []byte) (path string, cleanup func(), err error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temporary file: %w", err)
	}
	path = file.Name()
	cleanup = func() { os.Remove(path) }
	if _, err := file.Write(data); err != nil {
		file.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temporary file %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temporary file %s: %w", filepath.Base(path), err)
	}
	return path, cleanup, nil
}
