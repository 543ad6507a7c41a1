// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"slices"
	"testing"
)

func TestColumnSlicing(t *testing.T) {
	t.Parallel()
	header := "ID   Status  Spawn                 Ready                 Summary"
	starts, err := columnIndexes(header, []string{"ID", "Status", "Spawn", "Ready", "Summary"})
	if err != nil {
		t.Fatalf("columnIndexes: %v", err)
	}
	line := `1    Error   2025-07-12T06:49:22Z  2025-07-12T06:50:52Z  Perform HTTP check "demo-health"`
	cells := sliceColumns(line, starts)
	want := []string{"1", "Error", "2025-07-12T06:49:22Z", "2025-07-12T06:50:52Z", `Perform HTTP check "demo-health"`}
	if !slices.Equal(cells, want) {
		t.Errorf("cells = %q, want %q", cells, want)
	}
}

func TestColumnSlicingShortLine(t *testing.T) {
	t.Parallel()
	starts, err := columnIndexes("A    B    C", []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("columnIndexes: %v", err)
	}
	cells := sliceColumns("1    2", starts)
	want := []string{"1", "2", ""}
	if !slices.Equal(cells, want) {
		t.Errorf("cells = %q, want %q", cells, want)
	}
}

func TestColumnIndexesMissingColumn(t *testing.T) {
	t.Parallel()
	if _, err := columnIndexes("ID  Status", []string{"ID", "Summary"}); err == nil {
		t.Error("missing column accepted")
	}
}

func TestSplitFieldsN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		n    int
		want []string
	}{
		{
			line: "-rw-r--r--  root  root  13B  2025-07-12T06:48:02Z  hello.txt",
			n:    6,
			want: []string{"-rw-r--r--", "root", "root", "13B", "2025-07-12T06:48:02Z", "hello.txt"},
		},
		{
			line: "-rw-r--r--  root  root  13B  2025-07-12T06:48:02Z  name with spaces.txt",
			n:    6,
			want: []string{"-rw-r--r--", "root", "root", "13B", "2025-07-12T06:48:02Z", "name with spaces.txt"},
		},
		{
			line: "  a  b  ",
			n:    4,
			want: []string{"a", "b"},
		},
	}
	for _, test := range tests {
		got := splitFieldsN(test.line, test.n)
		if !slices.Equal(got, test.want) {
			t.Errorf("splitFieldsN(%q, %d) = %q, want %q", test.line, test.n, got, test.want)
		}
	}
}

func TestParseHumanSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  int64
	}{
		{"13B", 13},
		{"1KB", 1024},
		{"2MB", 2 * 1024 * 1024},
		{"3GB", 3 * 1024 * 1024 * 1024},
		{"0B", 0},
	}
	for _, test := range tests {
		got, err := parseHumanSize(test.input)
		if err != nil {
			t.Errorf("parseHumanSize(%q): %v", test.input, err)
			continue
		}
		if got == nil || *got != test.want {
			t.Errorf("parseHumanSize(%q) = %v, want %d", test.input, got, test.want)
		}
	}
}

func TestParseHumanSizeUnknown(t *testing.T) {
	t.Parallel()
	got, err := parseHumanSize("-")
	if err != nil {
		t.Fatalf("parseHumanSize(-): %v", err)
	}
	if got != nil {
		t.Errorf("parseHumanSize(-) = %d, want nil", *got)
	}
}

func TestParseHumanSizeInvalid(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "13", "big", "1TBB"} {
		if _, err := parseHumanSize(input); err == nil {
			t.Errorf("parseHumanSize(%q) accepted", input)
		}
	}
}

func TestParsePermissions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  uint32
	}{
		{"rwxr-xr-x", 0o755},
		{"rw-r--r--", 0o644},
		{"rwxr-xr--", 0o754},
		{"---------", 0o000},
		{"rwxrwxrwx", 0o777},
	}
	for _, test := range tests {
		got, err := parsePermissions(test.input)
		if err != nil {
			t.Errorf("parsePermissions(%q): %v", test.input, err)
			continue
		}
		if uint32(got) != test.want {
			t.Errorf("parsePermissions(%q) = %o, want %o", test.input, got, test.want)
		}
	}
}

func TestParsePermissionsWrongLength(t *testing.T) {
	t.Parallel()
	if _, err := parsePermissions("rwx"); err == nil {
		t.Error("short permission string accepted")
	}
}

func TestOutputLines(t *testing.T) {
	t.Parallel()
	lines := outputLines([]byte("first\n\nsecond\n"))
	want := []string{"first", "second"}
	if !slices.Equal(lines, want) {
		t.Errorf("outputLines = %q, want %q", lines, want)
	}
	if outputLines([]byte("  \n")) != nil {
		t.Error("blank output produced lines")
	}
}
