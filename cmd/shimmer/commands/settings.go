// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/shimmer-foundation/shimmer/client"
)

// toolSettings holds the connection flags shared by every subcommand:
// which tool binary to run, which socket it should talk to, and how
// long to wait for it.
type toolSettings struct {
	socket  string
	binary  string
	timeout time.Duration
	verbose bool
}

// addFlags registers the shared connection flags on a command's flag
// set.
func (s *toolSettings) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.socket, "socket", os.Getenv("PEBBLE_SOCKET"),
		"service manager socket path (defaults to $PEBBLE_SOCKET)")
	flagSet.StringVar(&s.binary, "binary", client.DefaultBinary,
		"service manager tool binary")
	flagSet.DurationVar(&s.timeout, "timeout", client.DefaultTimeout,
		"per-invocation timeout")
	flagSet.BoolVar(&s.verbose, "verbose", false,
		"log each tool invocation to stderr")
}

// newClient builds a client from the flags.
func (s *toolSettings) newClient() (*client.Client, error) {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return client.New(&client.Config{
		Binary:     s.binary,
		SocketPath: s.socket,
		Timeout:    s.timeout,
		Logger:     logger,
	})
}
