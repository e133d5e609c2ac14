package models

import (
	"testing"
	"time"
)

func TestComplaintUpdateStatus(t *testing.T) {
	now := time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC)

	t.Run("appends exactly one history entry per change", func(t *testing.T) {
		cp := &Complaint{ID: 1, Status: ComplaintStatusPending}
		cp.UpdateStatus(ComplaintStatusInProgress, 7, "picked up", now)
		cp.UpdateStatus(ComplaintStatusResolved, 7, "fixed", now.Add(time.Hour))

		if len(cp.StatusHistory) != 2 {
			t.Fatalf("history length = %d, want 2", len(cp.StatusHistory))
		}
		last := cp.StatusHistory[1]
		if last.Status != ComplaintStatusResolved || last.UpdatedBy != 7 || last.Comment != "fixed" {
			t.Errorf("unexpected history entry %+v", last)
		}
	})

	t.Run("resolution date is stamped once", func(t *testing.T) {
		cp := &Complaint{ID: 1, Status: ComplaintStatusInProgress}
		first := now
		cp.UpdateStatus(ComplaintStatusResolved, 7, "", first)
		if cp.ActualResolutionDate == nil || !cp.ActualResolutionDate.Equal(first) {
			t.Fatalf("resolution date = %v, want %v", cp.ActualResolutionDate, first)
		}

		cp.UpdateStatus(ComplaintStatusClosed, 7, "", now.AddDate(0, 0, 2))
		if !cp.ActualResolutionDate.Equal(first) {
			t.Errorf("resolution date moved to %v, want first stamp kept", cp.ActualResolutionDate)
		}
	})
}

func TestComplaintIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{ComplaintStatusPending, false},
		{ComplaintStatusInProgress, false},
		{ComplaintStatusResolved, true},
		{ComplaintStatusClosed, true},
		{ComplaintStatusRejected, true},
	}
	for _, tt := range tests {
		cp := &Complaint{Status: tt.status}
		if got := cp.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal() with %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestComplaintSyncUrgentFlag(t *testing.T) {
	cp := &Complaint{Priority: PriorityUrgent}
	cp.SyncUrgentFlag()
	if !cp.IsUrgent {
		t.Error("urgent priority should set the flag")
	}

	cp.Priority = PriorityLow
	cp.SyncUrgentFlag()
	if cp.IsUrgent {
		t.Error("low priority should clear the flag")
	}
}

func TestComplaintResolutionTimeHours(t *testing.T) {
	created := time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC)
	resolved := created.Add(26 * time.Hour)

	cp := &Complaint{CreatedAt: created}
	if got := cp.ResolutionTimeHours(); got != -1 {
		t.Errorf("ResolutionTimeHours() unresolved = %d, want -1", got)
	}

	cp.ActualResolutionDate = &resolved
	if got := cp.ResolutionTimeHours(); got != 26 {
		t.Errorf("ResolutionTimeHours() = %d, want 26", got)
	}
}

func TestComplaintIsOverdue(t *testing.T) {
	expected := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)
	after := expected.AddDate(0, 0, 1)

	open := &Complaint{Status: ComplaintStatusInProgress, ExpectedResolutionDate: &expected}
	if !open.IsOverdue(after) {
		t.Error("open complaint past expected date should be overdue")
	}
	if open.IsOverdue(expected.AddDate(0, 0, -1)) {
		t.Error("open complaint before expected date should not be overdue")
	}

	done := &Complaint{Status: ComplaintStatusResolved, ExpectedResolutionDate: &expected}
	if done.IsOverdue(after) {
		t.Error("resolved complaint should never be overdue")
	}

	noDate := &Complaint{Status: ComplaintStatusPending}
	if noDate.IsOverdue(after) {
		t.Error("complaint without expected date should not be overdue")
	}
}
