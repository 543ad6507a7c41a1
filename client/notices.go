// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NoticeType identifies a notice's type.
type NoticeType string

const (
	ChangeUpdateNotice NoticeType = "change-update"
	CustomNotice       NoticeType = "custom"
	WarningNotice      NoticeType = "warning"
)

// NoticesUsers selects whose notices a Notices call reports.
type NoticesUsers string

// NoticesUsersAll reports notices from all users (admin only).
const NoticesUsersAll NoticesUsers = "all"

// Notice describes one notice.
type Notice struct {
	ID string

	// UserID is nil for public notices.
	UserID *int

	Type NoticeType
	Key  string

	FirstOccurred time.Time
	LastRepeated  time.Time

	// LastOccurred is approximate when the notice came from Notices:
	// the listing does not carry it, so it is set to the retrieval
	// time. Notice (by ID) returns the authoritative value.
	LastOccurred time.Time

	Occurrences int

	// LastData holds the most recent notify data. Only available from
	// Notice (by ID); always nil in Notices listings.
	LastData map[string]string

	// RepeatAfter and ExpireAfter are only available from Notice (by
	// ID); zero in Notices listings.
	RepeatAfter time.Duration
	ExpireAfter time.Duration
}

// NoticesOptions filters a Notices call. Zero value reports the
// calling user's notices.
type NoticesOptions struct {
	// Users selects other users' notices (admin only).
	Users NoticesUsers

	// UserID selects one user's notices (admin only).
	UserID *int

	// Types filters by notice type.
	Types []NoticeType

	// Keys filters by notice key.
	Keys []string
}

var noticeColumns = []string{"ID", "User", "Type", "Key", "First", "Repeated", "Occurrences"}

// Notices returns notices matching the filters.
func (c *Client) Notices(ctx context.Context, opts *NoticesOptions) ([]*Notice, error) {
	args := []string{"notices", "--abs-time"}
	if opts != nil {
		if opts.Users != "" {
			args = append(args, "--users", string(opts.Users))
		}
		if opts.UserID != nil {
			args = append(args, "--uid", strconv.Itoa(*opts.UserID))
		}
		for _, noticeType := range opts.Types {
			args = append(args, "--type", string(noticeType))
		}
		for _, key := range opts.Keys {
			args = append(args, "--key", key)
		}
	}

	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return nil, err
	}

	// ID   User    Type           Key                  First                 Repeated              Occurrences
	// 2    public  change-update  2                    2025-07-12T06:49:22Z  2025-07-12T06:49:30Z  3
	lines := outputLines(res.stdout)
	if len(lines) < 2 {
		return nil, nil
	}
	starts, err := columnIndexes(lines[0], noticeColumns)
	if err != nil {
		return nil, c.parseFailure(fmt.Sprintf("notices listing: %v", err), res.stdout)
	}

	now := c.clock.Now()
	var notices []*Notice
	for _, line := range lines[1:] {
		cells := sliceColumns(line, starts)
		notice, err := parseNoticeRow(cells, now)
		if err != nil {
			return nil, c.parseFailure(fmt.Sprintf("notices listing line %q: %v", line, err), res.stdout)
		}
		notices = append(notices, notice)
	}
	return notices, nil
}

func parseNoticeRow(cells []string, now time.Time) (*Notice, error) {
	notice := &Notice{
		ID:   cells[0],
		Type: NoticeType(cells[2]),
		Key:  cells[3],
		// The listing has no last-occurred column; retrieval time is
		// the documented approximation.
		LastOccurred: now,
	}
	if cells[1] != "public" {
		uid, err := strconv.Atoi(cells[1])
		if err != nil {
			return nil, fmt.Errorf("invalid user %q", cells[1])
		}
		notice.UserID = &uid
	}
	first, err := parseAbsTime(cells[4])
	if err != nil {
		return nil, err
	}
	notice.FirstOccurred = first
	repeated, err := parseAbsTime(cells[5])
	if err != nil {
		return nil, err
	}
	notice.LastRepeated = repeated
	occurrences, err := strconv.Atoi(cells[6])
	if err != nil {
		return nil, fmt.Errorf("invalid occurrences %q", cells[6])
	}
	notice.Occurrences = occurrences
	return notice, nil
}

// noticeDetail is the structured markup the tool emits for a single
// notice.
type noticeDetail struct {
	ID            string            `yaml:"id"`
	UserID        *int              `yaml:"user-id"`
	Type          string            `yaml:"type"`
	Key           string            `yaml:"key"`
	FirstOccurred time.Time         `yaml:"first-occurred"`
	LastOccurred  time.Time         `yaml:"last-occurred"`
	LastRepeated  time.Time         `yaml:"last-repeated"`
	Occurrences   int               `yaml:"occurrences"`
	LastData      map[string]string `yaml:"last-data"`
	RepeatAfter   string            `yaml:"repeat-after"`
	ExpireAfter   string            `yaml:"expire-after"`
}

// Notice fetches one notice by ID. Unlike the Notices listing, the
// single-notice output is structured, so all fields are available,
// including the authoritative LastOccurred and the notify data.
func (c *Client) Notice(ctx context.Context, id string) (*Notice, error) {
	if id == "" {
		return nil, fmt.Errorf("notice ID is required")
	}
	res, err := c.runChecked(ctx, &invocation{args: []string{"notice", id}})
	if err != nil {
		return nil, err
	}
	var detail noticeDetail
	if err := yaml.Unmarshal(res.stdout, &detail); err != nil {
		return nil, c.parseFailure(fmt.Sprintf("notice detail is not valid YAML: %v", err), res.stdout)
	}
	if detail.ID == "" {
		return nil, c.parseFailure("notice detail has no id field", res.stdout)
	}
	notice := &Notice{
		ID:            detail.ID,
		UserID:        detail.UserID,
		Type:          NoticeType(detail.Type),
		Key:           detail.Key,
		FirstOccurred: detail.FirstOccurred,
		LastOccurred:  detail.LastOccurred,
		LastRepeated:  detail.LastRepeated,
		Occurrences:   detail.Occurrences,
		LastData:      detail.LastData,
	}
	if detail.RepeatAfter != "" {
		if repeatAfter, err := time.ParseDuration(detail.RepeatAfter); err == nil {
			notice.RepeatAfter = repeatAfter
		}
	}
	if detail.ExpireAfter != "" {
		if expireAfter, err := time.ParseDuration(detail.ExpireAfter); err == nil {
			notice.ExpireAfter = expireAfter
		}
	}
	return notice, nil
}

// NotifyOptions holds the arguments for Notify.
type NotifyOptions struct {
	// Type must be CustomNotice: the tool can only record custom
	// notices.
	Type NoticeType

	// Key is the notice key, in reverse-domain form
	// ("example.com/reload"). Required.
	Key string

	// Data is optional key/value data attached to the occurrence.
	Data map[string]string

	// RepeatAfter suppresses repeated occurrences within the window.
	RepeatAfter time.Duration
}

// Notify records a notice occurrence and returns the notice's ID.
func (c *Client) Notify(ctx context.Context, opts *NotifyOptions) (string, error) {
	if opts == nil || opts.Key == "" {
		return "", fmt.Errorf("notice key is required")
	}
	if opts.Type != CustomNotice {
		return "", fmt.Errorf("only custom notices can be recorded, got type %q", opts.Type)
	}
	args := []string{"notify"}
	if opts.RepeatAfter > 0 {
		args = append(args, "--repeat-after", opts.RepeatAfter.String())
	}
	args = append(args, opts.Key)
	names := make([]string, 0, len(opts.Data))
	for name := range opts.Data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, name+"="+opts.Data[name])
	}

	res, err := c.runChecked(ctx, &invocation{args: args})
	if err != nil {
		return "", err
	}
	// Recorded notice 38
	fields := strings.Fields(strings.TrimSpace(string(res.stdout)))
	if len(fields) == 0 {
		return "", c.parseFailure("notify output is empty", res.stdout)
	}
	return fields[len(fields)-1], nil
}
