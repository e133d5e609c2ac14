package models

import (
	"errors"
	"testing"
	"time"
)

func newTestRoom(capacity int) *Room {
	return &Room{
		ID:         1,
		RoomNumber: "A-101",
		Block:      "A",
		Floor:      1,
		Type:       RoomTypeDouble,
		Capacity:   capacity,
		Status:     RoomStatusAvailable,
		IsActive:   true,
	}
}

func TestRoomAddOccupant(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("fills beds and flips status at capacity", func(t *testing.T) {
		r := newTestRoom(2)
		if err := r.AddOccupant(10, 1, now); err != nil {
			t.Fatalf("AddOccupant() error = %v", err)
		}
		if r.CurrentOccupancy != 1 || r.Status != RoomStatusAvailable {
			t.Errorf("occupancy = %d status = %q, want 1/available", r.CurrentOccupancy, r.Status)
		}

		if err := r.AddOccupant(11, 2, now); err != nil {
			t.Fatalf("AddOccupant() error = %v", err)
		}
		if r.CurrentOccupancy != 2 || r.Status != RoomStatusOccupied {
			t.Errorf("occupancy = %d status = %q, want 2/occupied", r.CurrentOccupancy, r.Status)
		}
	})

	t.Run("rejects beyond capacity", func(t *testing.T) {
		r := newTestRoom(1)
		if err := r.AddOccupant(10, 1, now); err != nil {
			t.Fatalf("AddOccupant() error = %v", err)
		}
		if err := r.AddOccupant(11, 2, now); !errors.Is(err, ErrRoomAtCapacity) {
			t.Errorf("error = %v, want ErrRoomAtCapacity", err)
		}
	})

	t.Run("rejects duplicate student", func(t *testing.T) {
		r := newTestRoom(3)
		if err := r.AddOccupant(10, 1, now); err != nil {
			t.Fatalf("AddOccupant() error = %v", err)
		}
		if err := r.AddOccupant(10, 2, now); !errors.Is(err, ErrOccupantExists) {
			t.Errorf("error = %v, want ErrOccupantExists", err)
		}
	})

	t.Run("auto-assigns the next bed number", func(t *testing.T) {
		r := newTestRoom(3)
		if err := r.AddOccupant(10, 0, now); err != nil {
			t.Fatalf("AddOccupant() error = %v", err)
		}
		if err := r.AddOccupant(11, 0, now); err != nil {
			t.Fatalf("AddOccupant() error = %v", err)
		}
		if got := r.Occupants[1].BedNumber; got != 2 {
			t.Errorf("bed number = %d, want 2", got)
		}
	})
}

func TestRoomRemoveOccupant(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	r := newTestRoom(2)
	if err := r.AddOccupant(10, 1, now); err != nil {
		t.Fatalf("AddOccupant() error = %v", err)
	}
	if err := r.AddOccupant(11, 2, now); err != nil {
		t.Fatalf("AddOccupant() error = %v", err)
	}

	if err := r.RemoveOccupant(10); err != nil {
		t.Fatalf("RemoveOccupant() error = %v", err)
	}
	if r.CurrentOccupancy != 1 || r.Status != RoomStatusAvailable {
		t.Errorf("occupancy = %d status = %q, want 1/available", r.CurrentOccupancy, r.Status)
	}

	if err := r.RemoveOccupant(99); !errors.Is(err, ErrOccupantMissing) {
		t.Errorf("error = %v, want ErrOccupantMissing", err)
	}
}

func TestRoomSyncOccupancy(t *testing.T) {
	t.Run("maintenance status is preserved", func(t *testing.T) {
		r := newTestRoom(2)
		r.Status = RoomStatusMaintenance
		r.Occupants = []RoomOccupant{{StudentID: 10}}
		r.SyncOccupancy()
		if r.Status != RoomStatusMaintenance {
			t.Errorf("status = %q, want maintenance kept", r.Status)
		}
		if r.CurrentOccupancy != 1 {
			t.Errorf("occupancy = %d, want 1", r.CurrentOccupancy)
		}
	})

	t.Run("derived status follows occupant list", func(t *testing.T) {
		r := newTestRoom(1)
		r.Occupants = []RoomOccupant{{StudentID: 10}}
		r.SyncOccupancy()
		if r.Status != RoomStatusOccupied {
			t.Errorf("status = %q, want occupied", r.Status)
		}
		r.Occupants = nil
		r.SyncOccupancy()
		if r.Status != RoomStatusAvailable {
			t.Errorf("status = %q, want available", r.Status)
		}
	})
}

func TestRoomIsAvailable(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	r := newTestRoom(2)
	if !r.IsAvailable() {
		t.Error("empty available room should accept allocations")
	}

	r.Status = RoomStatusMaintenance
	if r.IsAvailable() {
		t.Error("maintenance room should not accept allocations")
	}

	full := newTestRoom(1)
	if err := full.AddOccupant(10, 1, now); err != nil {
		t.Fatalf("AddOccupant() error = %v", err)
	}
	if full.IsAvailable() {
		t.Error("full room should not accept allocations")
	}
}

func TestRoomOccupancyPercentage(t *testing.T) {
	r := newTestRoom(3)
	r.CurrentOccupancy = 2
	if got := r.OccupancyPercentage(); got != 67 {
		t.Errorf("OccupancyPercentage() = %d, want 67", got)
	}

	zero := &Room{}
	if got := zero.OccupancyPercentage(); got != 0 {
		t.Errorf("OccupancyPercentage() on zero capacity = %d, want 0", got)
	}
}
