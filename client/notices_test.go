// Copyright 2026 The Shimmer Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/shimmer-foundation/shimmer/lib/clock"
	"github.com/shimmer-foundation/shimmer/lib/testutil"
)

const noticesListing = `ID   User    Type           Key                  First                 Repeated              Occurrences
2    public  change-update  2                    2025-07-12T06:49:22Z  2025-07-12T06:49:30Z  3
3    1000    custom         example.com/reload   2025-07-12T06:50:00Z  2025-07-12T06:55:00Z  7`

func TestNotices(t *testing.T) {
	t.Parallel()
	listedAt := time.Date(2025, 7, 12, 7, 0, 0, 0, time.UTC)
	binary, record := testutil.ArgRecorder(t, `cat <<'EOF'
`+noticesListing+`
EOF`)
	c := newTestClient(t, binary, func(config *Config) {
		config.Clock = clock.Fake(listedAt)
	})
	notices, err := c.Notices(context.Background(), nil)
	if err != nil {
		t.Fatalf("Notices: %v", err)
	}
	if len(notices) != 2 {
		t.Fatalf("got %d notices, want 2", len(notices))
	}

	public := notices[0]
	if public.ID != "2" || public.Type != ChangeUpdateNotice || public.Key != "2" {
		t.Errorf("public notice = %+v", public)
	}
	if public.UserID != nil {
		t.Errorf("public notice UserID = %v, want nil", public.UserID)
	}
	if public.Occurrences != 3 {
		t.Errorf("Occurrences = %d, want 3", public.Occurrences)
	}
	if !public.LastOccurred.Equal(listedAt) {
		t.Errorf("LastOccurred = %v, want the listing time %v", public.LastOccurred, listedAt)
	}

	custom := notices[1]
	if custom.Type != CustomNotice || custom.Key != "example.com/reload" {
		t.Errorf("custom notice = %+v", custom)
	}
	if custom.UserID == nil || *custom.UserID != 1000 {
		t.Errorf("custom notice UserID = %v, want 1000", custom.UserID)
	}
	wantFirst := time.Date(2025, 7, 12, 6, 50, 0, 0, time.UTC)
	if !custom.FirstOccurred.Equal(wantFirst) {
		t.Errorf("FirstOccurred = %v, want %v", custom.FirstOccurred, wantFirst)
	}

	calls := testutil.RecordedArgs(t, record)
	want := []string{"notices", "--abs-time"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestNoticesFilters(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `echo "ID   User  Type  Key  First  Repeated  Occurrences"`)
	c := newTestClient(t, binary, nil)
	uid := 1000
	_, err := c.Notices(context.Background(), &NoticesOptions{
		Users:  NoticesUsersAll,
		UserID: &uid,
		Types:  []NoticeType{CustomNotice, WarningNotice},
		Keys:   []string{"example.com/a", "example.com/b"},
	})
	if err != nil {
		t.Fatalf("Notices: %v", err)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{
		"notices", "--abs-time",
		"--users", "all",
		"--uid", "1000",
		"--type", "custom", "--type", "warning",
		"--key", "example.com/a", "--key", "example.com/b",
	}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestNoticesEmpty(t *testing.T) {
	t.Parallel()
	binary := testutil.FakeTool(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	notices, err := c.Notices(context.Background(), nil)
	if err != nil {
		t.Fatalf("Notices: %v", err)
	}
	if notices != nil {
		t.Errorf("notices = %+v, want nil", notices)
	}
}

func TestNotice(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `cat <<'EOF'
id: "3"
user-id: 1000
type: custom
key: example.com/reload
first-occurred: 2025-07-12T06:50:00Z
last-occurred: 2025-07-12T06:58:30Z
last-repeated: 2025-07-12T06:55:00Z
occurrences: 7
last-data:
  source: deploy
repeat-after: 30m0s
expire-after: 168h0m0s
EOF`)
	c := newTestClient(t, binary, nil)
	notice, err := c.Notice(context.Background(), "3")
	if err != nil {
		t.Fatalf("Notice: %v", err)
	}
	if notice.ID != "3" || notice.Key != "example.com/reload" {
		t.Errorf("notice = %+v", notice)
	}
	if notice.UserID == nil || *notice.UserID != 1000 {
		t.Errorf("UserID = %v, want 1000", notice.UserID)
	}
	wantLast := time.Date(2025, 7, 12, 6, 58, 30, 0, time.UTC)
	if !notice.LastOccurred.Equal(wantLast) {
		t.Errorf("LastOccurred = %v, want the authoritative %v", notice.LastOccurred, wantLast)
	}
	if notice.LastData["source"] != "deploy" {
		t.Errorf("LastData = %v", notice.LastData)
	}
	if notice.RepeatAfter != 30*time.Minute {
		t.Errorf("RepeatAfter = %v, want 30m", notice.RepeatAfter)
	}
	if notice.ExpireAfter != 168*time.Hour {
		t.Errorf("ExpireAfter = %v, want 168h", notice.ExpireAfter)
	}
	calls := testutil.RecordedArgs(t, record)
	want := []string{"notice", "3"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestNotify(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `echo "Recorded notice 38"`)
	c := newTestClient(t, binary, nil)
	id, err := c.Notify(context.Background(), &NotifyOptions{
		Type:        CustomNotice,
		Key:         "example.com/reload",
		Data:        map[string]string{"source": "deploy", "actor": "ops"},
		RepeatAfter: time.Hour,
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if id != "38" {
		t.Errorf("notice ID = %q, want %q", id, "38")
	}
	calls := testutil.RecordedArgs(t, record)
	// Data keys are emitted in sorted order so the argv is stable.
	want := []string{"notify", "--repeat-after", "1h0m0s", "example.com/reload", "actor=ops", "source=deploy"}
	if len(calls) != 1 || !slices.Equal(calls[0], want) {
		t.Errorf("argv = %v, want %v", calls, want)
	}
}

func TestNotifyValidatesBeforeSpawn(t *testing.T) {
	t.Parallel()
	binary, record := testutil.ArgRecorder(t, `exit 0`)
	c := newTestClient(t, binary, nil)
	if _, err := c.Notify(context.Background(), nil); err == nil {
		t.Error("nil options accepted")
	}
	if _, err := c.Notify(context.Background(), &NotifyOptions{Type: CustomNotice}); err == nil {
		t.Error("missing key accepted")
	}
	if _, err := c.Notify(context.Background(), &NotifyOptions{
		Type: ChangeUpdateNotice,
		Key:  "example.com/x",
	}); err == nil {
		t.Error("non-custom notice type accepted")
	}
	if calls := testutil.RecordedArgs(t, record); calls != nil {
		t.Errorf("validation failures spawned processes: %v", calls)
	}
}
