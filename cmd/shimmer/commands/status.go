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

func checksCommand() *cli.Command {
	var settings toolSettings
	var level string

	return &cli.Command{
		Name:    "checks",
		Summary: "List health check status",
		Usage:   "shimmer checks [check]... [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("checks", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.StringVar(&level, "level", "", "filter by level (alive or ready)")
			return flagSet
		},
		Run: func(args []string) error {
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			checks, err := c.Checks(context.Background(), &client.ChecksOptions{
				Level: client.CheckLevel(level),
				Names: args,
			})
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Check\tLevel\tStatus")
			for _, check := range checks {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", check.Name, check.Level, check.Status)
			}
			return tw.Flush()
		},
	}
}

func changesCommand() *cli.Command {
	var settings toolSettings
	var selector string

	return &cli.Command{
		Name:    "changes",
		Summary: "List changes",
		Usage:   "shimmer changes [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("changes", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.StringVar(&selector, "select", "",
				"which changes to list (in-progress, ready, or all)")
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
			changes, err := c.Changes(context.Background(), &client.ChangesOptions{
				Selector: client.ChangeSelector(selector),
			})
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Println("No changes.")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tStatus\tSpawn\tSummary")
			for _, change := range changes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					change.ID, change.Status, change.SpawnTime.Format("2006-01-02T15:04:05Z07:00"), change.Summary)
			}
			return tw.Flush()
		},
	}
}
