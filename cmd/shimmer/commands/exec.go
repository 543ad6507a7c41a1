// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/shimmer-foundation/shimmer/client"
	"github.com/shimmer-foundation/shimmer/cmd/shimmer/cli"
)

func execCommand() *cli.Command {
	var settings toolSettings
	var serviceContext, workingDir, user, group string
	var timeout time.Duration
	var uid, gid int
	var env []string
	var terminal bool

	return &cli.Command{
		Name:    "exec",
		Summary: "Run a command on the managed system",
		Usage:   "shimmer exec [flags] -- <command>...",
		Examples: []cli.Example{
			{
				Description: "Run a one-shot command",
				Command:     "shimmer exec -- ps -ef",
			},
			{
				Description: "Run an interactive shell",
				Command:     "shimmer exec --terminal -- /bin/sh",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			settings.addFlags(flagSet)
			flagSet.StringVar(&serviceContext, "context", "",
				"run with the named service's environment and working directory")
			flagSet.StringVarP(&workingDir, "working-dir", "w", "", "working directory")
			flagSet.DurationVar(&timeout, "exec-timeout", 0,
				"bound the command's total runtime (0 means unbounded)")
			flagSet.StringVar(&user, "user", "", "run as this user")
			flagSet.IntVar(&uid, "uid", -1, "run as this user ID")
			flagSet.StringVar(&group, "group", "", "run as this group")
			flagSet.IntVar(&gid, "gid", -1, "run as this group ID")
			flagSet.StringArrayVar(&env, "env", nil,
				"environment variable (KEY=VALUE, repeatable)")
			flagSet.BoolVarP(&terminal, "terminal", "t", false,
				"put the local terminal into raw mode for the session")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a command is required after --")
			}
			opts := &client.ExecOptions{
				Command:        args,
				ServiceContext: serviceContext,
				WorkingDir:     workingDir,
				Timeout:        timeout,
				User:           user,
				Group:          group,
				Stdin:          os.Stdin,
				Stdout:         os.Stdout,
				Stderr:         os.Stderr,
			}
			if uid >= 0 {
				opts.UserID = &uid
			}
			if gid >= 0 {
				opts.GroupID = &gid
			}
			if len(env) > 0 {
				opts.Environment = make(map[string]string, len(env))
				for _, entry := range env {
					key, value, ok := strings.Cut(entry, "=")
					if !ok {
						return fmt.Errorf("invalid --env entry %q, want KEY=VALUE", entry)
					}
					opts.Environment[key] = value
				}
			}

			if terminal {
				fd := int(os.Stdin.Fd())
				if !term.IsTerminal(fd) {
					return fmt.Errorf("--terminal requires stdin to be a terminal")
				}
				state, err := term.MakeRaw(fd)
				if err != nil {
					return fmt.Errorf("set raw terminal mode: %w", err)
				}
				defer term.Restore(fd, state)
			}

			c, err := settings.newClient()
			if err != nil {
				return err
			}
			process, err := c.Exec(context.Background(), opts)
			if err != nil {
				return err
			}
			err = process.Wait()
			var execErr *client.ExecError
			if errors.As(err, &execErr) {
				// The remote command failed; its output already went to
				// our stdio, so propagate the code without extra noise.
				return &cli.ExitError{Code: execErr.ExitCode}
			}
			return err
		},
	}
}
