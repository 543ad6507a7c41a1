// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FakeTool writes an executable shell script into a test-scoped
// directory and returns its path. The script body runs under /bin/sh
// with the invocation's arguments in "$@", standing in for the external
// service-manager binary.
//
//	binary := testutil.FakeTool(t, `echo "v1.19.0"`)
func FakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-tool")
	content := "#!/bin/sh\n" + script
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write fake tool script: %v", err)
	}
	return path
}

// ArgRecorder returns a fake tool that appends each invocation's
// arguments (one line, tab-separated) to a record file, then runs the
// given script body. The record file path is returned alongside the
// binary path.
//
// Tests use the record to assert exact argv construction, and its
// absence to prove that no process was spawned.
func ArgRecorder(t *testing.T, script string) (binary, record string) {
	t.Helper()
	record = filepath.Join(t.TempDir(), "args.log")
	prefix := `printf '%s\t' "$@" >> ` + record + "\n" +
		`printf '\n' >> ` + record + "\n"
	return FakeTool(t, prefix+script), record
}

// RecordedArgs reads an ArgRecorder record file and returns one argv
// slice per invocation. A missing record file means no invocation
// happened and returns nil.
func RecordedArgs(t *testing.T, record string) [][]string {
	t.Helper()
	data, err := os.ReadFile(record)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read arg record: %v", err)
	}
	var calls [][]string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		calls = append(calls, strings.Split(strings.TrimSuffix(line, "\t"), "\t"))
	}
	return calls
}
