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

func lsCommand() *cli.Command {
	var settings toolSettings
	var pattern string
	var itself bool

	return &cli.Command{
		Name:    "ls",
		Summary: "List files on the managed system",
		Usage:   "shimmer ls <path> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ls", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.StringVar(&pattern, "pattern", "", "filter entries by glob pattern")
			flagSet.BoolVarP(&itself, "directory", "d", false,
				"list the directory itself, not its contents")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one path is required")
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			files, err := c.ListFiles(context.Background(), &client.ListFilesOptions{
				Path:    args[0],
				Pattern: pattern,
				Itself:  itself,
			})
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			for _, file := range files {
				size := "-"
				if file.Size != nil {
					size = fmt.Sprint(*file.Size)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					file.Permissions, file.User, file.Group, size,
					file.LastModified.Format("2006-01-02T15:04:05Z07:00"), file.Name)
			}
			return tw.Flush()
		},
	}
}

func mkdirCommand() *cli.Command {
	var settings toolSettings
	var parents bool
	var permissions string

	return &cli.Command{
		Name:    "mkdir",
		Summary: "Create a directory on the managed system",
		Usage:   "shimmer mkdir <path> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("mkdir", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.BoolVarP(&parents, "parents", "p", false, "create parent directories")
			flagSet.StringVarP(&permissions, "mode", "m", "", "octal permissions (e.g. 755)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one path is required")
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			return c.MakeDir(context.Background(), &client.MakeDirOptions{
				Path:        args[0],
				MakeParents: parents,
				Permissions: permissions,
			})
		},
	}
}

func rmCommand() *cli.Command {
	var settings toolSettings
	var recursive bool

	return &cli.Command{
		Name:    "rm",
		Summary: "Remove a file or directory on the managed system",
		Usage:   "shimmer rm <path> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rm", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.BoolVarP(&recursive, "recursive", "r", false,
				"remove directories and their contents")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one path is required")
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			return c.RemovePath(context.Background(), &client.RemovePathOptions{
				Path:      args[0],
				Recursive: recursive,
			})
		},
	}
}

func pushCommand() *cli.Command {
	var settings toolSettings
	var makeDirs bool
	var permissions string

	return &cli.Command{
		Name:    "push",
		Summary: "Write a local file to the managed system",
		Usage:   "shimmer push <local> <remote> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("push", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.BoolVarP(&makeDirs, "parents", "p", false, "create parent directories")
			flagSet.StringVarP(&permissions, "mode", "m", "", "octal permissions (e.g. 644)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("a local path and a remote path are required")
			}
			source, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open local file: %w", err)
			}
			defer source.Close()
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			return c.Push(context.Background(), &client.PushOptions{
				Path:        args[1],
				Source:      source,
				MakeDirs:    makeDirs,
				Permissions: permissions,
			})
		},
	}
}

func pullCommand() *cli.Command {
	var settings toolSettings

	return &cli.Command{
		Name:    "pull",
		Summary: "Read a file from the managed system",
		Usage:   "shimmer pull <remote> [local] [flags]",
		Description: `Read a file from the managed system.

With a local path, the content is written there; otherwise it is
written to stdout.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("pull", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return fmt.Errorf("a remote path (and optional local path) is required")
			}
			target := os.Stdout
			if len(args) == 2 {
				file, err := os.Create(args[1])
				if err != nil {
					return fmt.Errorf("create local file: %w", err)
				}
				defer file.Close()
				target = file
			}
			c, err := settings.newClient()
			if err != nil {
				return err
			}
			return c.Pull(context.Background(), &client.PullOptions{
				Path:   args[0],
				Target: target,
			})
		},
	}
}
