// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

// Package client provides a Pebble client that drives the pebble
// command-line tool instead of the daemon's unix socket API.
//
// The operation set, result types, and error taxonomy mirror the
// socket-based client, so code written against that contract runs
// unmodified in environments where the socket is inaccessible but the
// CLI binary is available (inside a workload container with the pebble
// binary on PATH, for example).
//
// Every operation is one subprocess: the client builds an argument
// vector, runs the binary with a bounded timeout, and parses stdout
// back into typed results. Non-zero exits are classified into the same
// typed errors the socket client raises, using the tool's exit code and
// stderr text. Exec is the one exception: it returns a live
// ExecProcess handle for streaming interaction with the spawned
// command.
//
// Concurrent calls on one Client are safe: each call owns an
// independent process and the Client itself is immutable after New.
//
// # Known limitations of the CLI transport
//
// The CLI surface exposes strictly less information than the socket
// API. Gaps are surfaced as explicit sentinels and documented on the
// affected fields rather than filled with fabricated values:
//
//   - Start, Stop, Restart, and Replan return a real change ID only in
//     NoWait mode; otherwise they block until the tool finishes and
//     return UnknownChangeID.
//   - Change.Kind, Change.Tasks, and Change.Err are not present in the
//     changes listing.
//   - Change.Ready is inferred from the Status column and is
//     approximate.
//   - Notice.LastOccurred from Notices is approximate; Notice (by ID)
//     returns the authoritative value.
//   - FileInfo user/group IDs are approximate outside of root.
//
// The output parsers are versioned against one pebble release; a
// change in the tool's output format is a breaking change of the
// external interface, not a client bug.
package client
