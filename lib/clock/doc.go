// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock parameter instead of calling time.Now,
// time.After, or time.Sleep directly. In production, Real() provides the
// standard library behavior. In tests, Fake() provides a deterministic
// clock that advances only when Advance is called.
//
// The client uses the clock for invocation duration measurement, exec
// timeouts, and change-polling delays, so tests of those paths never
// depend on wall-clock time.
package clock
