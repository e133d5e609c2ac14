package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/domain"
	"hostelhub/internal/pkg/idgen"

	"gorm.io/gorm"
)

// Leave errors
var (
	ErrLeaveNotFound       = errors.New("leave not found")
	ErrLeaveNotOwned       = errors.New("leave belongs to another student")
	ErrLeaveNotPending     = errors.New("leave is not pending")
	ErrLeaveNotApproved    = errors.New("leave is not approved")
	ErrLeaveDatesInvalid   = errors.New("end date must not be before start date")
	ErrLeaveInPast         = errors.New("leave cannot start in the past")
	ErrExtensionNotFound   = errors.New("extension request not found")
	ErrExtensionNotPending = errors.New("extension request is not pending")
	ErrExtensionTooShort   = errors.New("extension must push the end date out")
	ErrReturnAlreadySet    = errors.New("return has already been recorded")
)

// LeaveService handles the leave request lifecycle
type LeaveService struct {
	leaveRepo *repositories.LeaveRepository
	userRepo  repositories.UserRepository
	mailer    *MailerService
}

// NewLeaveService creates a new leave service
func NewLeaveService(leaveRepo *repositories.LeaveRepository, userRepo repositories.UserRepository, mailer *MailerService) *LeaveService {
	return &LeaveService{leaveRepo: leaveRepo, userRepo: userRepo, mailer: mailer}
}

// ApplyLeaveInput represents a new leave application
type ApplyLeaveInput struct {
	LeaveType string `json:"leave_type" validate:"required,oneof=home medical emergency personal academic other"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required,max=500"`

	Destination      models.Destination      `json:"destination"`
	EmergencyContact models.EmergencyContact `json:"emergency_contact"`

	ParentContactNumber string `json:"parent_contact_number" validate:"omitempty,min=10,max=15"`
}

// LeaveDecisionInput approves or rejects a pending leave
type LeaveDecisionInput struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// ExtensionInput requests more time on an approved leave
type ExtensionInput struct {
	NewEndDate string `json:"new_end_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"required,max=500"`
}

// LeaveResponse wraps a leave with its derived display status
type LeaveResponse struct {
	*models.Leave
	DisplayStatus string `json:"display_status"`
	DurationDays  int    `json:"duration_days"`
	OverdueDays   int    `json:"overdue_days,omitempty"`
}

// toResponse computes the presentation fields at read time
func toLeaveResponse(l *models.Leave, now time.Time) *LeaveResponse {
	return &LeaveResponse{
		Leave:         l,
		DisplayStatus: l.DisplayStatus(now),
		DurationDays:  l.DurationDays(),
		OverdueDays:   l.OverdueDays(now),
	}
}

// Apply files a leave application for the student
func (s *LeaveService) Apply(ctx context.Context, studentID uint, input *ApplyLeaveInput) (*LeaveResponse, error) {
	now := time.Now()

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, err
	}

	// Date sanity: no backwards ranges, no applications for the past
	if endDate.Before(startDate) {
		return nil, ErrLeaveDatesInvalid
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if startDate.Before(today) {
		return nil, ErrLeaveInPast
	}

	leave := &models.Leave{
		LeaveID:          idgen.LeaveID(now),
		StudentID:        studentID,
		LeaveType:        input.LeaveType,
		StartDate:        startDate,
		EndDate:          endDate,
		Reason:           input.Reason,
		Status:           models.LeaveStatusPending,
		AppliedDate:      now,
		Destination:      input.Destination,
		EmergencyContact: input.EmergencyContact,
	}
	leave.ParentApproval.ContactNumber = input.ParentContactNumber
	leave.ApplyDerivedFlags()

	// Seed the audit trail with the opening entry
	leave.StatusHistory = append(leave.StatusHistory, models.LeaveStatusLog{
		Status:    models.LeaveStatusPending,
		UpdatedBy: studentID,
		UpdatedAt: now,
		Comment:   "Leave applied",
	})

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("✅ Leave applied: %s (%s, %d days)", leave.LeaveID, leave.LeaveType, leave.DurationDays())
	return toLeaveResponse(leave, now), nil
}

// UpdateLeaveInput edits a pending application. Nil fields are
// untouched.
type UpdateLeaveInput struct {
	LeaveType *string `json:"leave_type" validate:"omitempty,oneof=home medical emergency personal academic other"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"reason" validate:"omitempty,max=500"`

	Destination      *models.Destination      `json:"destination"`
	EmergencyContact *models.EmergencyContact `json:"emergency_contact"`
}

// Update edits the student's own leave while it is still pending. The
// requirement flags are re-derived from the new type and dates.
func (s *LeaveService) Update(ctx context.Context, actor domain.Actor, id uint, input *UpdateLeaveInput) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != models.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	now := time.Now()

	if input.LeaveType != nil {
		leave.LeaveType = *input.LeaveType
	}
	if input.StartDate != nil {
		start, err := time.Parse("2006-01-02", *input.StartDate)
		if err != nil {
			return nil, err
		}
		leave.StartDate = start
	}
	if input.EndDate != nil {
		end, err := time.Parse("2006-01-02", *input.EndDate)
		if err != nil {
			return nil, err
		}
		leave.EndDate = end
	}
	if input.Reason != nil {
		leave.Reason = *input.Reason
	}
	if input.Destination != nil {
		leave.Destination = *input.Destination
	}
	if input.EmergencyContact != nil {
		leave.EmergencyContact = *input.EmergencyContact
	}

	if leave.EndDate.Before(leave.StartDate) {
		return nil, ErrLeaveDatesInvalid
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if leave.StartDate.Before(today) {
		return nil, ErrLeaveInPast
	}

	leave.ApplyDerivedFlags()

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}
	return toLeaveResponse(leave, now), nil
}

// GetByID fetches one leave, enforcing the owner-or-staff rule
func (s *LeaveService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toLeaveResponse(leave, time.Now()), nil
}

func (s *LeaveService) getOwned(ctx context.Context, actor domain.Actor, id uint) (*models.Leave, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}

	if !actor.CanActOn(leave.StudentID) {
		return nil, ErrLeaveNotOwned
	}
	return leave, nil
}

// List lists leaves. Students are always scoped to their own.
func (s *LeaveService) List(ctx context.Context, actor domain.Actor, f repositories.LeaveFilter) ([]*LeaveResponse, int64, error) {
	if !actor.Role.IsStaff() {
		f.StudentID = &actor.ID
	}

	leaves, total, err := s.leaveRepo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	out := make([]*LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, toLeaveResponse(l, now))
	}
	return out, total, nil
}

// Decide approves or rejects a pending leave
func (s *LeaveService) Decide(ctx context.Context, actor domain.Actor, id uint, input *LeaveDecisionInput) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if leave.Status != models.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	now := time.Now()
	if input.Approve {
		leave.UpdateStatus(models.LeaveStatusApproved, actor.ID, input.Comment, now)
	} else {
		leave.UpdateStatus(models.LeaveStatusRejected, actor.ID, input.Comment, now)
	}

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	// Decision mail is best effort
	if leave.Student == nil {
		leave.Student, _ = s.userRepo.GetByID(ctx, leave.StudentID)
	}
	if leave.Student != nil {
		s.mailer.SendLeaveDecision(leave.Student, leave)
	}

	log.Printf("✅ Leave %s %s by user %d", leave.LeaveID, leave.Status, actor.ID)
	return toLeaveResponse(leave, now), nil
}

// Cancel withdraws the student's own pending leave
func (s *LeaveService) Cancel(ctx context.Context, actor domain.Actor, id uint) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Only pending applications can be withdrawn
	if leave.Status != models.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	now := time.Now()
	leave.UpdateStatus(models.LeaveStatusCancelled, actor.ID, "Cancelled by student", now)

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("✅ Leave %s cancelled", leave.LeaveID)
	return toLeaveResponse(leave, now), nil
}

// RequestExtension files an extension on an approved leave
func (s *LeaveService) RequestExtension(ctx context.Context, actor domain.Actor, id uint, input *ExtensionInput) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if leave.Status != models.LeaveStatusApproved {
		return nil, ErrLeaveNotApproved
	}

	newEnd, err := time.Parse("2006-01-02", input.NewEndDate)
	if err != nil {
		return nil, err
	}
	if !newEnd.After(leave.EndDate) {
		return nil, ErrExtensionTooShort
	}

	now := time.Now()
	leave.RequestExtension(newEnd, input.Reason, now)

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("✅ Extension requested on leave %s until %s", leave.LeaveID, input.NewEndDate)
	return toLeaveResponse(leave, now), nil
}

// DecideExtension approves or rejects one pending extension request
func (s *LeaveService) DecideExtension(ctx context.Context, actor domain.Actor, leaveID, extensionID uint, input *LeaveDecisionInput) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, leaveID)
	if err != nil {
		return nil, err
	}

	var ext *models.LeaveExtension
	for i := range leave.ExtensionRequests {
		if leave.ExtensionRequests[i].ID == extensionID {
			ext = &leave.ExtensionRequests[i]
			break
		}
	}
	if ext == nil {
		return nil, ErrExtensionNotFound
	}
	if ext.Status != models.LeaveStatusPending {
		return nil, ErrExtensionNotPending
	}

	now := time.Now()
	if input.Approve {
		leave.ApproveExtension(ext, actor.ID, now)
	} else {
		ext.Status = models.LeaveStatusRejected
	}

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("✅ Extension %d on leave %s %s", extensionID, leave.LeaveID, ext.Status)
	return toLeaveResponse(leave, now), nil
}

// RecordReturn stamps the student's actual return date
func (s *LeaveService) RecordReturn(ctx context.Context, actor domain.Actor, id uint) (*LeaveResponse, error) {
	leave, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if leave.Status != models.LeaveStatusApproved {
		return nil, ErrLeaveNotApproved
	}
	if leave.ActualReturnDate != nil {
		return nil, ErrReturnAlreadySet
	}

	now := time.Now()
	leave.ActualReturnDate = &now

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("✅ Return recorded on leave %s", leave.LeaveID)
	return toLeaveResponse(leave, now), nil
}

// Stats summarizes leaves for dashboards
func (s *LeaveService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.leaveRepo.CountByStatus(ctx)
}
