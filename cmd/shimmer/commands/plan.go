// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/shimmer-foundation/shimmer/client"
	"github.com/shimmer-foundation/shimmer/cmd/shimmer/cli"
)

func planCommand() *cli.Command {
	var settings toolSettings

	return &cli.Command{
		Name:    "plan",
		Summary: "Show the effective plan",
		Usage:   "shimmer plan [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("plan", pflag.ContinueOnError)
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
			data, err := c.PlanBytes(context.Background())
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func addCommand() *cli.Command {
	var settings toolSettings
	var combine bool

	return &cli.Command{
		Name:    "add",
		Summary: "Add a configuration layer",
		Usage:   "shimmer add <label> <layer-file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Add a layer from a file",
				Command:     "shimmer add custom ./layer.yaml",
			},
			{
				Description: "Read the layer from stdin",
				Command:     "cat layer.yaml | shimmer add custom -",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.BoolVar(&combine, "combine", false,
				"combine with an existing layer of the same label")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("a layer label and layer file are required")
			}
			var data []byte
			var err error
			if args[1] == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(args[1])
			}
			if err != nil {
				return fmt.Errorf("read layer: %w", err)
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			return c.AddLayer(context.Background(), &client.AddLayerOptions{
				Label:     args[0],
				LayerData: data,
				Combine:   combine,
			})
		},
	}
}
