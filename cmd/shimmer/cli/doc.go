// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the lightweight command-tree framework for the
// shimmer binary. Each command declares its name, help text, flags,
// and either subcommands or a Run function. Commands are assembled
// into a tree in cmd/shimmer/commands and dispatched from main.
package cli
