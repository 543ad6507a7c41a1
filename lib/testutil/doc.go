// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// The central helper is FakeTool, which writes an executable shell
// script that stands in for the external service-manager binary in
// tests. Scripts decide their output and exit code from the arguments
// they receive, which lets client tests exercise every output shape and
// failure mode without a real daemon.
//
// The channel helpers (RequireReceive, RequireClosed) encapsulate the
// timeout safety valve pattern for tests of streaming execution, so
// individual tests do not need direct time.After calls.
package testutil
