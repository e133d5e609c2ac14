package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Room status
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusReserved    = "reserved"
)

// Room types
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeTriple = "triple"
)

// Occupancy ledger errors
var (
	ErrRoomAtCapacity  = errors.New("room is at full capacity")
	ErrOccupantExists  = errors.New("student is already assigned to this room")
	ErrOccupantMissing = errors.New("student is not assigned to this room")
)

// Room represents rooms table
type Room struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	RoomNumber      string         `gorm:"uniqueIndex;size:20;not null" json:"room_number"`
	Block           string         `gorm:"size:10;not null;index" json:"block"`
	Floor           int            `gorm:"not null" json:"floor"`
	Type            string         `gorm:"size:10;not null" json:"type"`
	Capacity        int            `gorm:"not null" json:"capacity"`
	CurrentOccupancy int           `gorm:"default:0" json:"current_occupancy"`
	Status          string         `gorm:"size:20;default:'available';index" json:"status"`
	MonthlyRent     float64        `gorm:"type:decimal(10,2);not null" json:"monthly_rent"`
	SecurityDeposit float64        `gorm:"type:decimal(10,2);not null" json:"security_deposit"`
	Amenities       string         `gorm:"size:255" json:"amenities,omitempty"`
	Images          string         `gorm:"type:text" json:"images,omitempty"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Occupants          []RoomOccupant      `gorm:"foreignKey:RoomID" json:"occupants,omitempty"`
	MaintenanceHistory []MaintenanceRecord `gorm:"foreignKey:RoomID" json:"maintenance_history,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// RoomOccupant is one allocated bed in a room
type RoomOccupant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RoomID        uint      `gorm:"not null;index" json:"room_id"`
	StudentID     uint      `gorm:"not null;index" json:"student_id"`
	BedNumber     int       `gorm:"not null" json:"bed_number"`
	AllocatedDate time.Time `gorm:"not null" json:"allocated_date"`
	Student       *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (RoomOccupant) TableName() string {
	return "room_occupants"
}

// MaintenanceRecord is one maintenance issue logged against a room
type MaintenanceRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RoomID       uint       `gorm:"not null;index" json:"room_id"`
	Issue        string     `gorm:"size:200" json:"issue"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	Cost         float64    `gorm:"type:decimal(10,2)" json:"cost"`
	ReportedBy   *uint      `json:"reported_by,omitempty"`
	ReportedDate time.Time  `json:"reported_date"`
	ResolvedDate *time.Time `json:"resolved_date,omitempty"`
}

func (MaintenanceRecord) TableName() string {
	return "room_maintenance_records"
}

// SyncOccupancy recomputes the derived occupancy count and status from
// the loaded occupant list. Rooms held in maintenance or reserved keep
// their manual status.
func (r *Room) SyncOccupancy() {
	r.CurrentOccupancy = len(r.Occupants)

	if r.Status == RoomStatusMaintenance || r.Status == RoomStatusReserved {
		return
	}
	if r.CurrentOccupancy >= r.Capacity {
		r.Status = RoomStatusOccupied
	} else {
		r.Status = RoomStatusAvailable
	}
}

// AddOccupant appends a student to the occupant list, enforcing the
// capacity and duplicate-assignment invariants. The caller is
// responsible for updating the student's own room reference; the two
// writes are not transactional.
func (r *Room) AddOccupant(studentID uint, bedNumber int, now time.Time) error {
	if r.CurrentOccupancy >= r.Capacity {
		return ErrRoomAtCapacity
	}
	for _, occ := range r.Occupants {
		if occ.StudentID == studentID {
			return ErrOccupantExists
		}
	}

	if bedNumber <= 0 {
		bedNumber = len(r.Occupants) + 1
	}

	r.Occupants = append(r.Occupants, RoomOccupant{
		RoomID:        r.ID,
		StudentID:     studentID,
		BedNumber:     bedNumber,
		AllocatedDate: now,
	})
	r.SyncOccupancy()
	return nil
}

// RemoveOccupant filters the student out of the occupant list and
// recomputes the derived fields.
func (r *Room) RemoveOccupant(studentID uint) error {
	kept := r.Occupants[:0]
	found := false
	for _, occ := range r.Occupants {
		if occ.StudentID == studentID {
			found = true
			continue
		}
		kept = append(kept, occ)
	}
	if !found {
		return ErrOccupantMissing
	}
	r.Occupants = kept
	r.SyncOccupancy()
	return nil
}

// IsAvailable reports whether a bed can be allocated
func (r *Room) IsAvailable() bool {
	return r.Status == RoomStatusAvailable && r.CurrentOccupancy < r.Capacity
}

// OccupancyPercentage returns occupancy as a rounded percentage
func (r *Room) OccupancyPercentage() int {
	if r.Capacity == 0 {
		return 0
	}
	return int(float64(r.CurrentOccupancy)/float64(r.Capacity)*100 + 0.5)
}
