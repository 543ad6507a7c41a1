// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/shimmer-foundation/shimmer/cmd/shimmer/cli"
)

// Root builds and returns the complete shimmer CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "shimmer",
		Description: `Shimmer: a CLI-backed service manager client.

Drives the service manager through its command-line tool instead of
its control socket, for environments where the socket is not directly
reachable.`,
		Subcommands: []*cli.Command{
			versionCommand(),
			servicesCommand(),
			startCommand(),
			stopCommand(),
			restartCommand(),
			replanCommand(),
			signalCommand(),
			checksCommand(),
			changesCommand(),
			planCommand(),
			addCommand(),
			lsCommand(),
			mkdirCommand(),
			rmCommand(),
			pushCommand(),
			pullCommand(),
			execCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List service status",
				Command:     "shimmer services --socket /tmp/mgr/.pebble.socket",
			},
			{
				Description: "Start two services without waiting",
				Command:     "shimmer start web db --no-wait",
			},
			{
				Description: "Show the effective plan",
				Command:     "shimmer plan",
			},
			{
				Description: "Copy a configuration file onto the managed system",
				Command:     "shimmer push ./app.conf /etc/app.conf -m 644",
			},
			{
				Description: "Run an interactive shell on the managed system",
				Command:     "shimmer exec --terminal -- /bin/sh",
			},
		},
	}
}

func versionCommand() *cli.Command {
	var settings toolSettings

	return &cli.Command{
		Name:    "version",
		Summary: "Print the tool's client version",
		Usage:   "shimmer version [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			info, err := c.SysInfo(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(info.Version)
			return nil
		},
	}
}
