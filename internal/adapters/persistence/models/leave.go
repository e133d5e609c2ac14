package models

import (
	"time"

	"gorm.io/gorm"
)

// Leave status
const (
	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// Display-only derived states for approved leaves
const (
	LeaveDisplayUpcoming  = "upcoming"
	LeaveDisplayActive    = "active"
	LeaveDisplayOverdue   = "overdue"
	LeaveDisplayCompleted = "completed"
)

// Leave types
const (
	LeaveTypeHome      = "home"
	LeaveTypeMedical   = "medical"
	LeaveTypeEmergency = "emergency"
	LeaveTypePersonal  = "personal"
	LeaveTypeAcademic  = "academic"
	LeaveTypeOther     = "other"
)

// ParentApprovalDays is the duration above which parent approval is
// required.
const ParentApprovalDays = 7

// Destination is where the student is going during leave
type Destination struct {
	Address string `gorm:"size:200" json:"address,omitempty"`
	City    string `gorm:"size:50" json:"city,omitempty"`
	State   string `gorm:"size:50" json:"state,omitempty"`
	Pincode string `gorm:"size:10" json:"pincode,omitempty"`
}

// ParentApproval tracks the guardian sign-off requirement
type ParentApproval struct {
	Required      bool       `gorm:"default:false" json:"required"`
	Obtained      bool       `gorm:"default:false" json:"obtained"`
	ContactNumber string     `gorm:"size:15" json:"contact_number,omitempty"`
	ApprovalDate  *time.Time `json:"approval_date,omitempty"`
}

// MedicalCertificate tracks the certificate requirement for medical
// leaves
type MedicalCertificate struct {
	Required   bool       `gorm:"default:false" json:"required"`
	Uploaded   bool       `gorm:"default:false" json:"uploaded"`
	FileName   string     `gorm:"size:255" json:"file_name,omitempty"`
	UploadDate *time.Time `json:"upload_date,omitempty"`
}

// Leave represents leaves table
type Leave struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LeaveID   string `gorm:"uniqueIndex;size:20;not null" json:"leave_id"`
	StudentID uint   `gorm:"not null;index" json:"student_id"`
	LeaveType string `gorm:"size:15;not null;index" json:"leave_type"`

	StartDate time.Time `gorm:"not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	Reason    string    `gorm:"size:500;not null" json:"reason"`
	Status    string    `gorm:"size:15;default:'pending';index" json:"status"`

	AppliedDate     time.Time  `json:"applied_date"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedDate    *time.Time `json:"approved_date,omitempty"`
	RejectionReason string     `gorm:"size:500" json:"rejection_reason,omitempty"`

	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergency_contact"`
	Destination      Destination      `gorm:"embedded;embeddedPrefix:destination_" json:"destination"`
	Attachments      string           `gorm:"type:text" json:"attachments,omitempty"`

	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
	IsExtended       bool       `gorm:"default:false" json:"is_extended"`

	ParentApproval     ParentApproval     `gorm:"embedded;embeddedPrefix:parent_" json:"parent_approval"`
	MedicalCertificate MedicalCertificate `gorm:"embedded;embeddedPrefix:medical_" json:"medical_certificate"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Student           *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Approver          *User            `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	StatusHistory     []LeaveStatusLog `gorm:"foreignKey:LeaveRef" json:"status_history,omitempty"`
	ExtensionRequests []LeaveExtension `gorm:"foreignKey:LeaveRef" json:"extension_requests,omitempty"`
}

func (Leave) TableName() string {
	return "leaves"
}

// LeaveStatusLog is one append-only audit entry of a status change
type LeaveStatusLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LeaveRef  uint      `gorm:"not null;index" json:"leave_ref"`
	Status    string    `gorm:"size:15;not null" json:"status"`
	UpdatedBy uint      `gorm:"not null" json:"updated_by"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	Comment   string    `gorm:"size:500" json:"comment,omitempty"`
	Actor     *User     `gorm:"foreignKey:UpdatedBy" json:"actor,omitempty"`
}

func (LeaveStatusLog) TableName() string {
	return "leave_status_logs"
}

// LeaveExtension is an independent extension sub-request
type LeaveExtension struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	LeaveRef         uint       `gorm:"not null;index" json:"leave_ref"`
	RequestedEndDate time.Time  `gorm:"not null" json:"requested_end_date"`
	Reason           string     `gorm:"size:500" json:"reason"`
	RequestedDate    time.Time  `json:"requested_date"`
	Status           string     `gorm:"size:15;default:'pending'" json:"status"`
	ApprovedBy       *uint      `json:"approved_by,omitempty"`
	ApprovedDate     *time.Time `json:"approved_date,omitempty"`
}

func (LeaveExtension) TableName() string {
	return "leave_extensions"
}

// ApplyDerivedFlags sets the requirement flags computed from the leave
// type and duration.
func (l *Leave) ApplyDerivedFlags() {
	if l.LeaveType == LeaveTypeMedical {
		l.MedicalCertificate.Required = true
	}
	if l.DurationDays() > ParentApprovalDays {
		l.ParentApproval.Required = true
	}
}

// DurationDays returns the leave length in whole days, rounded up
func (l *Leave) DurationDays() int {
	if l.EndDate.Before(l.StartDate) {
		return 0
	}
	d := l.EndDate.Sub(l.StartDate)
	days := int(d.Hours() / 24)
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// UpdateStatus sets the new status, appends exactly one history entry
// and stamps the approver or rejection reason.
func (l *Leave) UpdateStatus(newStatus string, actorID uint, comment string, now time.Time) {
	l.Status = newStatus
	l.StatusHistory = append(l.StatusHistory, LeaveStatusLog{
		LeaveRef:  l.ID,
		Status:    newStatus,
		UpdatedBy: actorID,
		UpdatedAt: now,
		Comment:   comment,
	})

	switch newStatus {
	case LeaveStatusApproved:
		l.ApprovedBy = &actorID
		l.ApprovedDate = &now
	case LeaveStatusRejected:
		l.RejectionReason = comment
	}
}

// RequestExtension appends an independent pending extension request
func (l *Leave) RequestExtension(newEndDate time.Time, reason string, now time.Time) *LeaveExtension {
	l.ExtensionRequests = append(l.ExtensionRequests, LeaveExtension{
		LeaveRef:         l.ID,
		RequestedEndDate: newEndDate,
		Reason:           reason,
		RequestedDate:    now,
		Status:           LeaveStatusPending,
	})
	return &l.ExtensionRequests[len(l.ExtensionRequests)-1]
}

// ApproveExtension marks the extension approved and pushes the parent
// leave's end date out.
func (l *Leave) ApproveExtension(ext *LeaveExtension, approverID uint, now time.Time) {
	ext.Status = LeaveStatusApproved
	ext.ApprovedBy = &approverID
	ext.ApprovedDate = &now
	l.EndDate = ext.RequestedEndDate
	l.IsExtended = true
}

// DisplayStatus derives the presentation state of an approved leave
// from the clock. It is never persisted.
func (l *Leave) DisplayStatus(now time.Time) string {
	if l.Status != LeaveStatusApproved {
		return l.Status
	}
	switch {
	case now.Before(l.StartDate):
		return LeaveDisplayUpcoming
	case !now.After(l.EndDate):
		return LeaveDisplayActive
	case l.ActualReturnDate != nil:
		return LeaveDisplayCompleted
	default:
		return LeaveDisplayOverdue
	}
}

// OverdueDays returns days past the end date without a recorded return
func (l *Leave) OverdueDays(now time.Time) int {
	if l.Status != LeaveStatusApproved || l.ActualReturnDate != nil {
		return 0
	}
	if !now.After(l.EndDate) {
		return 0
	}
	return int(now.Sub(l.EndDate).Hours() / 24)
}
