// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"time"
)

// invocation is one external-process execution request. Builders
// produce an invocation from a typed request; the runner consumes it
// exactly once. The argument vector is handed to the operating system
// as-is; it is never joined into a shell string, so argument content
// cannot be reinterpreted as additional arguments or shell syntax.
type invocation struct {
	// args is the argument vector after the binary name.
	args []string

	// env holds per-invocation environment overrides, applied on top
	// of the client's environment template.
	env map[string]string

	// stdin is the payload supplied to the process's stdin, if any.
	stdin []byte

	// timeout overrides the client's default timeout when positive.
	timeout time.Duration
}

// ownerArgs appends the --user/--uid/--group/--gid flags shared by the
// file and exec subcommands. A name takes precedence over a numeric ID,
// matching the socket client's precedence.
func ownerArgs(args []string, user string, userID *int, group string, groupID *int) []string {
	switch {
	case user != "":
		args = append(args, "--user", user)
	case userID != nil:
		args = append(args, "--uid", fmt.Sprint(*userID))
	}
	switch {
	case group != "":
		args = append(args, "--group", group)
	case groupID != nil:
		args = append(args, "--gid", fmt.Sprint(*groupID))
	}
	return args
}

// validateNames rejects an empty required name list before any process
// is spawned.
func validateNames(kind string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%s list cannot be empty", kind)
	}
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%s name cannot be empty", kind)
		}
	}
	return nil
}
