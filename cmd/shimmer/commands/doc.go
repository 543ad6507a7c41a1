// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the shimmer CLI command tree. Each
// subcommand constructs a client from the shared connection flags and
// invokes one client operation, so the binary exercises exactly the
// same code paths as library consumers.
package commands
