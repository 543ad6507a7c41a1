// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"time"
)

// FileType is the type of a file system entry.
type FileType string

const (
	TypeFile      FileType = "file"
	TypeDirectory FileType = "directory"
	TypeSymlink   FileType = "symlink"
	TypeSocket    FileType = "socket"
	TypeNamedPipe FileType = "named-pipe"
	TypeDevice    FileType = "device"
	TypeUnknown   FileType = "unknown"
)

// FileInfo describes one entry from a directory listing.
type FileInfo struct {
	// Path is the directory (or file, with Itself) that was listed.
	Path string

	// Name is the entry's name.
	Name string

	// Type is derived from the mode character of the listing.
	Type FileType

	// Permissions is the entry's permission bits.
	Permissions fs.FileMode

	// Size is the entry's size in bytes, nil when the listing shows
	// none (directories). The listing's human-readable units bound its
	// precision.
	Size *int64

	// User and Group are the owner names from the listing.
	User  string
	Group string

	// UserID and GroupID are approximate: the listing carries names
	// only, so "root" maps to 0 and any other owner maps to the
	// calling process's own IDs. Callers needing authoritative IDs
	// must resolve the names themselves.
	UserID  *int
	GroupID *int

	// LastModified is the entry's modification time.
	LastModified time.Time
}

// ListFilesOptions holds the arguments for ListFiles.
type ListFilesOptions struct {
	// Path is the directory to list (or file to describe). Required.
	Path string

	// Pattern filters entries by name with shell-style globbing
	// (applied client-side; the tool has no pattern flag).
	Pattern string

	// Itself lists the directory entry itself rather than its
	// contents.
	Itself bool
}

// ListFiles returns information about the files in a directory, or
// about the path itself with Itself set. Listing the same unchanged
// directory twice yields identical results.
func (c *Client) ListFiles(ctx context.Context, opts *ListFilesOptions) ([]*FileInfo, error) {
	if opts == nil || opts.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if opts.Pattern != "" {
		// Reject bad patterns before spawning a process.
		if _, err := path.Match(opts.Pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", opts.Pattern, err)
		}
	}

	args := []string{"ls", "--abs-time", "-l", opts.Path}
	if opts.Itself {
		args = append(args, "-d")
	}
	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return nil, err
	}

	// drwxr-xr-x  root  root     -  2025-07-12T06:43:11Z  dev
	// -rw-r--r--  root  root  13B  2025-07-12T06:48:02Z  hello.txt
	var files []*FileInfo
	for _, line := range outputLines(res.stdout) {
		fields := splitFieldsN(line, 6)
		if len(fields) < 6 {
			continue
		}
		name := fields[5]
		if opts.Pattern != "" {
			matched, _ := path.Match(opts.Pattern, name)
			if !matched {
				continue
			}
		}
		info, err := parseFileLine(opts.Path, fields)
		if err != nil {
			return nil, c.parseFailure(fmt.Sprintf("file listing line %q: %v", line, err), res.stdout)
		}
		files = append(files, info)
	}
	return files, nil
}

func parseFileLine(listPath string, fields []string) (*FileInfo, error) {
	mode := fields[0]
	if len(mode) != 10 {
		return nil, fmt.Errorf("mode column %q is not 10 characters", mode)
	}
	permissions, err := parsePermissions(mode[1:])
	if err != nil {
		return nil, err
	}
	size, err := parseHumanSize(fields[3])
	if err != nil {
		return nil, err
	}
	modified, err := parseAbsTime(fields[4])
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Path:         listPath,
		Name:         fields[5],
		Type:         fileTypeFromMode(mode[0]),
		Permissions:  permissions,
		Size:         size,
		User:         fields[1],
		Group:        fields[2],
		UserID:       guessOwnerID(fields[1], os.Getuid()),
		GroupID:      guessOwnerID(fields[2], os.Getgid()),
		LastModified: modified,
	}, nil
}

// fileTypeFromMode maps the listing's mode character to a FileType.
func fileTypeFromMode(char byte) FileType {
	switch char {
	case 'd':
		return TypeDirectory
	case 'l':
		return TypeSymlink
	case 's':
		return TypeSocket
	case 'p':
		return TypeNamedPipe
	case 'b', 'c':
		return TypeDevice
	case '-':
		return TypeFile
	default:
		return TypeUnknown
	}
}

// guessOwnerID is the documented approximation for numeric owner IDs:
// "root" is 0, anything else is assumed to be the calling process.
func guessOwnerID(owner string, fallback int) *int {
	id := fallback
	if owner == "root" {
		id = 0
	}
	return &id
}

// MakeDirOptions holds the arguments for MakeDir.
type MakeDirOptions struct {
	// Path is the directory to create. Required.
	Path string

	// MakeParents creates missing parent directories as well.
	MakeParents bool

	// Permissions is the octal permission string for the new
	// directory ("755"). Empty leaves the tool's default.
	Permissions string

	UserID  *int
	User    string
	GroupID *int
	Group   string
}

// MakeDir creates a directory.
func (c *Client) MakeDir(ctx context.Context, opts *MakeDirOptions) error {
	if opts == nil || opts.Path == "" {
		return fmt.Errorf("path is required")
	}
	args := []string{"mkdir", opts.Path}
	if opts.MakeParents {
		args = append(args, "-p")
	}
	if opts.Permissions != "" {
		args = append(args, "-m", opts.Permissions)
	}
	args = ownerArgs(args, opts.User, opts.UserID, opts.Group, opts.GroupID)
	_, err := c.runChecked(ctx, &invocation{args: args})
	return err
}

// RemovePathOptions holds the arguments for RemovePath.
type RemovePathOptions struct {
	// Path is the file or directory to remove. Required.
	Path string

	// Recursive removes directories and their contents.
	Recursive bool
}

// RemovePath removes a file or directory.
func (c *Client) RemovePath(ctx context.Context, opts *RemovePathOptions) error {
	if opts == nil || opts.Path == "" {
		return fmt.Errorf("path is required")
	}
	args := []string{"rm", opts.Path}
	if opts.Recursive {
		args = append(args, "--recursive")
	}
	_, err := c.runChecked(ctx, &invocation{args: args})
	return err
}

// PushOptions holds the arguments for Push.
type PushOptions struct {
	// Path is the destination path. Required.
	Path string

	// Source provides the content to write. Required. The bytes pass
	// through a temporary file unmodified; arbitrary binary content
	// round-trips exactly.
	Source io.Reader

	// MakeDirs creates missing parent directories of Path.
	MakeDirs bool

	// Permissions is the octal permission string for the file ("644").
	// Empty leaves the tool's default.
	Permissions string

	UserID  *int
	User    string
	GroupID *int
	Group   string
}

// Push writes content to a file on the managed system. The payload is
// staged in a temporary file (removed on every path), never embedded in
// the argument vector.
func (c *Client) Push(ctx context.Context, opts *PushOptions) error {
	if opts == nil || opts.Path == "" {
		return fmt.Errorf("path is required")
	}
	if opts.Source == nil {
		return fmt.Errorf("source is required")
	}
	content, err := io.ReadAll(opts.Source)
	if err != nil {
		return fmt.Errorf("read push source: %w", err)
	}
	local, cleanup, err := writeTempFile("push-*", content)
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{"push", local, opts.Path}
	if opts.MakeDirs {
		args = append(args, "-p")
	}
	if opts.Permissions != "" {
		args = append(args, "-m", opts.Permissions)
	}
	args = ownerArgs(args, opts.User, opts.UserID, opts.Group, opts.GroupID)
	_, err = c.runChecked(ctx, &invocation{args: args})
	return err
}

// PullOptions holds the arguments for Pull.
type PullOptions struct {
	// Path is the file to read. Required.
	Path string

	// Target receives the file's content. Required.
	Target io.Writer
}

// Pull reads a file from the managed system into opts.Target. The
// content is staged through a temporary file (removed on every path)
// and copied verbatim; bytes pushed and pulled round-trip exactly.
func (c *Client) Pull(ctx context.Context, opts *PullOptions) error {
	if opts == nil || opts.Path == "" {
		return fmt.Errorf("path is required")
	}
	if opts.Target == nil {
		return fmt.Errorf("target is required")
	}
	local, cleanup, err := writeTempFile("pull-*", nil)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := c.runChecked(ctx, &invocation{args: []string{"pull", opts.Path, local}}); err != nil {
		return err
	}
	file, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("open pulled content: %w", err)
	}
	defer file.Close()
	if _, err := io.Copy(opts.Target, file); err != nil {
		return fmt.Errorf("copy pulled content: %w", err)
	}
	return nil
}
