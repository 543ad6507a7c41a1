// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "shimmer",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "services",
				Run: func(args []string) error {
					called = "services"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"services"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "services" {
		t.Errorf("dispatched to %q, want %q", called, "services")
	}
}

func TestCommand_Execute_PassesPositionalArgs(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "shimmer",
		Subcommands: []*Command{
			{
				Name: "start",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"start", "web", "db"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "web" || receivedArgs[1] != "db" {
		t.Errorf("args = %v, want [web db]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var socketPath string
	var target string

	command := &Command{
		Name: "start",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("start", pflag.ContinueOnError)
			flagSet.StringVar(&socketPath, "socket", "/default.socket", "socket path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--socket", "/custom.socket", "web"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if socketPath != "/custom.socket" {
		t.Errorf("socketPath = %q, want %q", socketPath, "/custom.socket")
	}
	if target != "web" {
		t.Errorf("target = %q, want %q", target, "web")
	}
}

func TestCommand_Execute_UnknownFlag(t *testing.T) {
	command := &Command{
		Name: "start",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("start", pflag.ContinueOnError)
			flagSet.Bool("no-wait", false, "do not wait for the change to finish")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--nowait"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if !strings.Contains(err.Error(), "nowait") {
		t.Errorf("error = %q, should mention the bad flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommand(t *testing.T) {
	root := &Command{
		Name: "shimmer",
		Subcommands: []*Command{
			{Name: "services"},
			{Name: "checks"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error = %q, want unknown command message", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "shimmer",
				Summary: "Service manager client",
				Subcommands: []*Command{
					{Name: "services", Summary: "List service status"},
				},
			}

			err := root.Execute([]string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "shimmer",
		Subcommands: []*Command{
			{Name: "services", Summary: "List service status"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "shimmer",
		Description: "CLI-backed service manager client.",
		Subcommands: []*Command{
			{Name: "services", Summary: "List service status"},
			{Name: "start", Summary: "Start services"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Start two services without waiting",
				Command:     "shimmer start web db --no-wait",
			},
			{
				Description: "Show the effective plan",
				Command:     "shimmer plan --socket /tmp/mgr/.pebble.socket",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"CLI-backed service manager client.",
		"Usage:",
		"shimmer <command> [flags]",
		"Commands:",
		"services",
		"List service status",
		"start",
		"Start services",
		"Examples:",
		"shimmer start web db --no-wait",
		"shimmer plan",
		"Run 'shimmer <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "start",
		Summary: "Start services",
		Usage:   "shimmer start <service>... [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("start", pflag.ContinueOnError)
			flagSet.String("socket", "", "service manager socket path")
			flagSet.Bool("no-wait", false, "do not wait for the change to finish")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"shimmer start <service>... [flags]",
		"Flags:",
		"socket",
		"no-wait",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "shimmer"}
	identities := &Command{Name: "identities", parent: root}
	remove := &Command{Name: "remove", parent: identities}

	if got := root.fullName(); got != "shimmer" {
		t.Errorf("root.fullName() = %q, want %q", got, "shimmer")
	}
	if got := identities.fullName(); got != "shimmer identities" {
		t.Errorf("identities.fullName() = %q, want %q", got, "shimmer identities")
	}
	if got := remove.fullName(); got != "shimmer identities remove" {
		t.Errorf("remove.fullName() = %q, want %q", got, "shimmer identities remove")
	}
}
