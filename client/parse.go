// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"
)

// columnIndexes locates each expected column's start offset in a table
// header line. The changes and notices listings have free-form cell
// content (summaries with spaces), so cells are sliced by header
// position rather than split on whitespace.
func columnIndexes(header string, columns []string) ([]int, error) {
	starts := make([]int, len(columns))
	for i, column := range columns {
		idx := strings.Index(header, column)
		if idx == -1 {
			return nil, fmt.Errorf("column %q not found in header %q", column, header)
		}
		starts[i] = idx
	}
	return starts, nil
}

// sliceColumns cuts one table row into cells using header offsets.
// The final cell extends to the end of the line.
func sliceColumns(line string, starts []int) []string {
	cells := make([]string, len(starts))
	for i := range starts {
		start := starts[i]
		if start > len(line) {
			start = len(line)
		}
		end := len(line)
		if i+1 < len(starts) && starts[i+1] < end {
			end = starts[i+1]
		}
		if start > end {
			start = end
		}
		cells[i] = strings.TrimSpace(line[start:end])
	}
	return cells
}

// splitFieldsN splits a line on runs of whitespace into at most n
// fields; the final field keeps the remainder of the line verbatim
// (trimmed). Used for listings whose last column may contain spaces,
// like file names.
func splitFieldsN(line string, n int) []string {
	var fields []string
	rest := strings.TrimSpace(line)
	for len(fields) < n-1 && rest != "" {
		idx := strings.IndexAny(rest, " \t")
		if idx == -1 {
			break
		}
		fields = append(fields, rest[:idx])
		rest = strings.TrimLeft(rest[idx:], " \t")
	}
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}

// parseHumanSize converts the tool's human-readable size column ("13B",
// "1KB", "2MB", "3GB") to bytes. "-" means the size is unknown and
// returns nil.
func parseHumanSize(size string) (*int64, error) {
	if size == "-" {
		return nil, nil
	}
	s := strings.ToUpper(strings.TrimSpace(size))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "KB"):
		s, multiplier = s[:len(s)-2], 1024
	case strings.HasSuffix(s, "MB"):
		s, multiplier = s[:len(s)-2], 1024*1024
	case strings.HasSuffix(s, "GB"):
		s, multiplier = s[:len(s)-2], 1024*1024*1024
	case strings.HasSuffix(s, "B"):
		s = s[:len(s)-1]
	default:
		return nil, fmt.Errorf("invalid size format: %q", size)
	}
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid size format: %q", size)
	}
	value *= multiplier
	return &value, nil
}

// parsePermissions converts a 9-character symbolic permission string
// ("rwxr-xr--") to a file mode.
func parsePermissions(perms string) (fs.FileMode, error) {
	if len(perms) != 9 {
		return 0, fmt.Errorf("permission string must be exactly 9 characters, got %q", perms)
	}
	var mode fs.FileMode
	for i := 0; i < 9; i += 3 {
		var triplet fs.FileMode
		if perms[i] == 'r' {
			triplet |= 4
		}
		if perms[i+1] == 'w' {
			triplet |= 2
		}
		if perms[i+2] == 'x' {
			triplet |= 1
		}
		mode = mode<<3 | triplet
	}
	return mode, nil
}

// parseAbsTime parses a timestamp produced under --abs-time (RFC 3339).
func parseAbsTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

// outputLines splits trimmed stdout into lines, dropping blank ones.
func outputLines(output []byte) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
