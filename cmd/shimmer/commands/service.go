// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/shimmer-foundation/shimmer/client"
	"github.com/shimmer-foundation/shimmer/cmd/shimmer/cli"
)

func servicesCommand() *cli.Command {
	var settings toolSettings

	return &cli.Command{
		Name:    "services",
		Summary: "List service status",
		Usage:   "shimmer services [service]... [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("services", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			services, err := c.Services(context.Background(), &client.ServicesOptions{Names: args})
			if err != nil {
				return err
			}
			if len(services) == 0 {
				fmt.Println("Plan has no services.")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Service\tStartup\tCurrent")
			for _, service := range services {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", service.Name, service.Startup, service.Current)
			}
			return tw.Flush()
		},
	}
}

func startCommand() *cli.Command {
	return serviceActionCommand("start", "Start services",
		func(c *client.Client, opts *client.ServiceOptions) (client.ChangeID, error) {
			return c.Start(context.Background(), opts)
		})
}

func stopCommand() *cli.Command {
	return serviceActionCommand("stop", "Stop services",
		func(c *client.Client, opts *client.ServiceOptions) (client.ChangeID, error) {
			return c.Stop(context.Background(), opts)
		})
}

func restartCommand() *cli.Command {
	return serviceActionCommand("restart", "Restart services",
		func(c *client.Client, opts *client.ServiceOptions) (client.ChangeID, error) {
			return c.Restart(context.Background(), opts)
		})
}

func serviceActionCommand(name, summary string, action func(*client.Client, *client.ServiceOptions) (client.ChangeID, error)) *cli.Command {
	var settings toolSettings
	var noWait bool

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   fmt.Sprintf("shimmer %s <service>... [flags]", name),
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.BoolVar(&noWait, "no-wait", false,
				"print the change ID immediately instead of waiting")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one service name is required")
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			id, err := action(c, &client.ServiceOptions{Names: args, NoWait: noWait})
			if err != nil {
				return err
			}
			if noWait {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func replanCommand() *cli.Command {
	var settings toolSettings
	var noWait bool

	return &cli.Command{
		Name:    "replan",
		Summary: "Align running services with the current plan",
		Usage:   "shimmer replan [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("replan", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.BoolVar(&noWait, "no-wait", false,
				"print the change ID immediately instead of waiting")
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
			id, err := c.Replan(context.Background(), &client.ReplanOptions{NoWait: noWait})
			if err != nil {
				return err
			}
			if noWait {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func signalCommand() *cli.Command {
	var settings toolSettings

	return &cli.Command{
		Name:    "signal",
		Summary: "Send a signal to running services",
		Usage:   "shimmer signal <SIGNAL> <service>... [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("signal", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("a signal name and at least one service are required")
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			return c.SendSignal(context.Background(), &client.SendSignalOptions{
				Signal:   args[0],
				Services: args[1:],
			})
		},
	}
}
