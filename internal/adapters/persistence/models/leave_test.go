package models

import (
	"testing"
	"time"
)

func newTestLeave(leaveType string, start, end time.Time) *Leave {
	return &Leave{
		ID:        1,
		LeaveID:   "LV20260812",
		StudentID: 10,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Status:    LeaveStatusPending,
	}
}

func TestLeaveApplyDerivedFlags(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("medical leave requires a certificate", func(t *testing.T) {
		l := newTestLeave(LeaveTypeMedical, start, start.AddDate(0, 0, 2))
		l.ApplyDerivedFlags()
		if !l.MedicalCertificate.Required {
			t.Error("medical certificate should be required")
		}
		if l.ParentApproval.Required {
			t.Error("short leave should not require parent approval")
		}
	})

	t.Run("long leave requires parent approval", func(t *testing.T) {
		l := newTestLeave(LeaveTypeHome, start, start.AddDate(0, 0, 10))
		l.ApplyDerivedFlags()
		if !l.ParentApproval.Required {
			t.Error("leave above the threshold should require parent approval")
		}
		if l.MedicalCertificate.Required {
			t.Error("home leave should not require a certificate")
		}
	})

	t.Run("exact threshold does not require approval", func(t *testing.T) {
		l := newTestLeave(LeaveTypeHome, start, start.AddDate(0, 0, ParentApprovalDays))
		l.ApplyDerivedFlags()
		if l.ParentApproval.Required {
			t.Errorf("%d day leave should not require parent approval", ParentApprovalDays)
		}
	})
}

func TestLeaveDurationDays(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	l := newTestLeave(LeaveTypeHome, start, start.AddDate(0, 0, 3))
	if got := l.DurationDays(); got != 3 {
		t.Errorf("DurationDays() = %d, want 3", got)
	}

	partial := newTestLeave(LeaveTypeHome, start, start.Add(36*time.Hour))
	if got := partial.DurationDays(); got != 2 {
		t.Errorf("DurationDays() with partial day = %d, want 2 (rounded up)", got)
	}

	inverted := newTestLeave(LeaveTypeHome, start, start.AddDate(0, 0, -1))
	if got := inverted.DurationDays(); got != 0 {
		t.Errorf("DurationDays() with inverted range = %d, want 0", got)
	}
}

func TestLeaveUpdateStatus(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 5)

	t.Run("approval stamps the approver", func(t *testing.T) {
		l := newTestLeave(LeaveTypeHome, start, start.AddDate(0, 0, 3))
		l.UpdateStatus(LeaveStatusApproved, 7, "ok", now)

		if l.Status != LeaveStatusApproved {
			t.Errorf("status = %q, want approved", l.Status)
		}
		if l.ApprovedBy == nil || *l.ApprovedBy != 7 {
			t.Errorf("approver = %v, want 7", l.ApprovedBy)
		}
		if len(l.StatusHistory) != 1 {
			t.Errorf("history length = %d, want 1", len(l.StatusHistory))
		}
	})

	t.Run("rejection records the reason", func(t *testing.T) {
		l := newTestLeave(LeaveTypeHome, start, start.AddDate(0, 0, 3))
		l.UpdateStatus(LeaveStatusRejected, 7, "exams ongoing", now)
		if l.RejectionReason != "exams ongoing" {
			t.Errorf("rejection reason = %q, want the comment", l.RejectionReason)
		}
	})
}

func TestLeaveDisplayStatus(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	l := newTestLeave(LeaveTypeHome, start, end)

	// Non-approved leaves keep their stored status.
	if got := l.DisplayStatus(start); got != LeaveStatusPending {
		t.Errorf("DisplayStatus() pending = %q, want pending", got)
	}

	l.Status = LeaveStatusApproved

	tests := []struct {
		name     string
		now      time.Time
		returned bool
		want     string
	}{
		{"before start", start.AddDate(0, 0, -1), false, LeaveDisplayUpcoming},
		{"during leave", start.AddDate(0, 0, 2), false, LeaveDisplayActive},
		{"past end, no return", end.AddDate(0, 0, 2), false, LeaveDisplayOverdue},
		{"past end, returned", end.AddDate(0, 0, 2), true, LeaveDisplayCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.ActualReturnDate = nil
			if tt.returned {
				ret := end.AddDate(0, 0, 1)
				l.ActualReturnDate = &ret
			}
			if got := l.DisplayStatus(tt.now); got != tt.want {
				t.Errorf("DisplayStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLeaveOverdueDays(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	l := newTestLeave(LeaveTypeHome, start, end)
	l.Status = LeaveStatusApproved

	if got := l.OverdueDays(end.AddDate(0, 0, 3)); got != 3 {
		t.Errorf("OverdueDays() = %d, want 3", got)
	}
	if got := l.OverdueDays(end.AddDate(0, 0, -1)); got != 0 {
		t.Errorf("OverdueDays() before end = %d, want 0", got)
	}

	ret := end
	l.ActualReturnDate = &ret
	if got := l.OverdueDays(end.AddDate(0, 0, 3)); got != 0 {
		t.Errorf("OverdueDays() after return = %d, want 0", got)
	}
}

func TestLeaveExtension(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	newEnd := end.AddDate(0, 0, 4)

	l := newTestLeave(LeaveTypeHome, start, end)
	l.Status = LeaveStatusApproved

	ext := l.RequestExtension(newEnd, "train cancelled", now)
	if ext.Status != LeaveStatusPending {
		t.Errorf("extension status = %q, want pending", ext.Status)
	}
	if l.EndDate != end {
		t.Error("pending extension must not move the end date")
	}

	l.ApproveExtension(ext, 7, now.Add(time.Hour))
	if !l.EndDate.Equal(newEnd) {
		t.Errorf("end date = %v, want %v", l.EndDate, newEnd)
	}
	if !l.IsExtended {
		t.Error("leave should be marked extended")
	}
	if ext.Status != LeaveStatusApproved || ext.ApprovedBy == nil || *ext.ApprovedBy != 7 {
		t.Errorf("unexpected extension state %+v", ext)
	}
}
