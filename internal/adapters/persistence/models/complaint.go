package models

import (
	"time"

	"gorm.io/gorm"
)

// Complaint status
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
	ComplaintStatusRejected   = "rejected"
)

// Complaint priority
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Resolution is the closing record of a complaint
type Resolution struct {
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ResolvedBy  *uint      `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Cost        float64    `gorm:"type:decimal(10,2)" json:"cost,omitempty"`
	Rating      int        `json:"rating,omitempty"` // 1-5, set by the reporter
	Feedback    string     `gorm:"size:500" json:"feedback,omitempty"`
}

// Complaint represents complaints table
type Complaint struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"uniqueIndex;size:20;not null" json:"complaint_id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"size:20;not null;index" json:"category"`
	Priority    string `gorm:"size:10;default:'medium';index" json:"priority"`
	Status      string `gorm:"size:20;default:'pending';index" json:"status"`

	ReportedBy uint  `gorm:"not null;index" json:"reported_by"`
	AssignedTo *uint `gorm:"index" json:"assigned_to,omitempty"`
	RoomID     *uint `gorm:"index" json:"room_id,omitempty"`

	Location string `gorm:"size:100" json:"location,omitempty"`
	Images   string `gorm:"type:text" json:"images,omitempty"`
	Tags     string `gorm:"size:255" json:"tags,omitempty"`

	Resolution             Resolution `gorm:"embedded;embeddedPrefix:resolution_" json:"resolution"`
	ExpectedResolutionDate *time.Time `json:"expected_resolution_date,omitempty"`
	ActualResolutionDate   *time.Time `json:"actual_resolution_date,omitempty"`
	IsUrgent               bool       `gorm:"default:false" json:"is_urgent"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Reporter      *User                `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
	Assignee      *User                `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Room          *Room                `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	StatusHistory []ComplaintStatusLog `gorm:"foreignKey:ComplaintRef" json:"status_history,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintStatusLog is one append-only audit entry of a status change
type ComplaintStatusLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ComplaintRef uint      `gorm:"not null;index" json:"complaint_ref"`
	Status       string    `gorm:"size:20;not null" json:"status"`
	UpdatedBy    uint      `gorm:"not null" json:"updated_by"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
	Comment      string    `gorm:"size:500" json:"comment,omitempty"`
	Actor        *User     `gorm:"foreignKey:UpdatedBy" json:"actor,omitempty"`
}

func (ComplaintStatusLog) TableName() string {
	return "complaint_status_logs"
}

// SyncUrgentFlag keeps the urgent flag in step with priority
func (cp *Complaint) SyncUrgentFlag() {
	cp.IsUrgent = cp.Priority == PriorityUrgent
}

// UpdateStatus sets the new status, appends exactly one history entry
// and stamps the resolution date the first time the complaint reaches
// a terminal state.
func (cp *Complaint) UpdateStatus(newStatus string, actorID uint, comment string, now time.Time) {
	cp.Status = newStatus
	cp.StatusHistory = append(cp.StatusHistory, ComplaintStatusLog{
		ComplaintRef: cp.ID,
		Status:       newStatus,
		UpdatedBy:    actorID,
		UpdatedAt:    now,
		Comment:      comment,
	})

	if (newStatus == ComplaintStatusResolved || newStatus == ComplaintStatusClosed) && cp.ActualResolutionDate == nil {
		cp.ActualResolutionDate = &now
	}
}

// IsTerminal reports whether the complaint has reached a final state
func (cp *Complaint) IsTerminal() bool {
	return cp.Status == ComplaintStatusResolved ||
		cp.Status == ComplaintStatusClosed ||
		cp.Status == ComplaintStatusRejected
}

// ResolutionTimeHours returns hours from creation to resolution, or -1
// while unresolved.
func (cp *Complaint) ResolutionTimeHours() int {
	if cp.ActualResolutionDate == nil {
		return -1
	}
	return int(cp.ActualResolutionDate.Sub(cp.CreatedAt).Round(time.Hour).Hours())
}

// IsOverdue reports whether the expected resolution date has passed
// for a still-open complaint.
func (cp *Complaint) IsOverdue(now time.Time) bool {
	if cp.ExpectedResolutionDate == nil {
		return false
	}
	if cp.Status == ComplaintStatusResolved || cp.Status == ComplaintStatusClosed {
		return false
	}
	return now.After(*cp.ExpectedResolutionDate)
}
