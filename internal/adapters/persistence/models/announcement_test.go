package models

import (
	"testing"
	"time"
)

func newLiveAnnouncement(audience string) *Announcement {
	return &Announcement{
		ID:             1,
		Title:          "Water supply interruption",
		Content:        "Block A supply is off on Saturday morning.",
		Status:         AnnouncementStatusPublished,
		TargetAudience: audience,
		PublishDate:    time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestAnnouncementMarkAsRead(t *testing.T) {
	now := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	a := newLiveAnnouncement(AudienceAll)

	if !a.MarkAsRead(10, now) {
		t.Error("first read should add an entry")
	}
	if a.MarkAsRead(10, now.Add(time.Hour)) {
		t.Error("repeat read should be a no-op")
	}
	if len(a.ReadBy) != 1 {
		t.Errorf("read entries = %d, want 1", len(a.ReadBy))
	}
	if a.ViewCount != 1 {
		t.Errorf("view count = %d, want 1", a.ViewCount)
	}

	if !a.MarkAsRead(11, now) {
		t.Error("different reader should add an entry")
	}
	if a.ViewCount != 2 {
		t.Errorf("view count = %d, want 2", a.ViewCount)
	}
}

func TestAnnouncementToggleLike(t *testing.T) {
	now := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	a := newLiveAnnouncement(AudienceAll)

	if !a.ToggleLike(10, now) {
		t.Error("first toggle should like")
	}
	if a.LikeCount() != 1 {
		t.Errorf("like count = %d, want 1", a.LikeCount())
	}

	if a.ToggleLike(10, now) {
		t.Error("second toggle should unlike")
	}
	if a.LikeCount() != 0 {
		t.Errorf("like count = %d, want 0", a.LikeCount())
	}
}

func TestAnnouncementIsVisibleTo(t *testing.T) {
	now := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)

	t.Run("audience filtering", func(t *testing.T) {
		tests := []struct {
			audience string
			role     string
			want     bool
		}{
			{AudienceAll, "student", true},
			{AudienceAll, "warden", true},
			{AudienceStudents, "student", true},
			{AudienceStudents, "warden", false},
			{AudienceWardens, "warden", true},
			{AudienceWardens, "student", false},
			{AudienceAdmins, "admin", true},
			{AudienceAdmins, "student", false},
		}
		for _, tt := range tests {
			a := newLiveAnnouncement(tt.audience)
			if got := a.IsVisibleTo(tt.role, 10, now); got != tt.want {
				t.Errorf("IsVisibleTo(%q) with audience %q = %v, want %v", tt.role, tt.audience, got, tt.want)
			}
		}
	})

	t.Run("specific users", func(t *testing.T) {
		a := newLiveAnnouncement(AudienceSpecificUsers)
		a.TargetUsers = []AnnouncementTarget{{UserID: 10}, {UserID: 12}}

		if !a.IsVisibleTo("student", 10, now) {
			t.Error("targeted user should see the announcement")
		}
		if a.IsVisibleTo("student", 11, now) {
			t.Error("non-targeted user should not see the announcement")
		}
	})

	t.Run("draft is never visible", func(t *testing.T) {
		a := newLiveAnnouncement(AudienceAll)
		a.Status = AnnouncementStatusDraft
		if a.IsVisibleTo("student", 10, now) {
			t.Error("draft should not be visible")
		}
	})

	t.Run("expired is never visible", func(t *testing.T) {
		a := newLiveAnnouncement(AudienceAll)
		expiry := now.AddDate(0, 0, -1)
		a.ExpiryDate = &expiry
		if a.IsVisibleTo("student", 10, now) {
			t.Error("past-expiry announcement should not be visible")
		}
	})
}

func TestAnnouncementRefreshExpiry(t *testing.T) {
	now := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)

	a := newLiveAnnouncement(AudienceAll)
	expiry := now.AddDate(0, 0, -1)
	a.ExpiryDate = &expiry
	a.RefreshExpiry(now)
	if a.Status != AnnouncementStatusExpired {
		t.Errorf("status = %q, want expired", a.Status)
	}

	fresh := newLiveAnnouncement(AudienceAll)
	future := now.AddDate(0, 0, 3)
	fresh.ExpiryDate = &future
	fresh.RefreshExpiry(now)
	if fresh.Status != AnnouncementStatusPublished {
		t.Errorf("status = %q, want published kept", fresh.Status)
	}

	draft := newLiveAnnouncement(AudienceAll)
	draft.Status = AnnouncementStatusDraft
	draft.ExpiryDate = &expiry
	draft.RefreshExpiry(now)
	if draft.Status != AnnouncementStatusDraft {
		t.Errorf("status = %q, want draft kept", draft.Status)
	}
}

func TestAnnouncementAddComment(t *testing.T) {
	now := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	a := newLiveAnnouncement(AudienceAll)

	c := a.AddComment(10, "Will the supply be back by noon?", now)
	if c.UserID != 10 || c.Comment == "" {
		t.Errorf("unexpected comment %+v", c)
	}
	if a.CommentCount() != 1 {
		t.Errorf("comment count = %d, want 1", a.CommentCount())
	}
}
