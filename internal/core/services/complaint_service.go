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

// Complaint errors
var (
	ErrComplaintNotFound   = errors.New("complaint not found")
	ErrComplaintTerminal   = errors.New("complaint has already reached a final state")
	ErrComplaintNotOwned   = errors.New("complaint belongs to another student")
	ErrAssigneeNotStaff    = errors.New("complaints can only be assigned to staff")
	ErrComplaintUnresolved = errors.New("complaint is not resolved yet")
	ErrInvalidStatus       = errors.New("unknown complaint status")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// expectedResolutionHours maps priority to the resolution window
var expectedResolutionHours = map[string]int{
	models.PriorityUrgent: 24,
	models.PriorityHigh:   48,
	models.PriorityMedium: 72,
	models.PriorityLow:    120,
}

// ComplaintService handles the complaint lifecycle
type ComplaintService struct {
	complaintRepo *repositories.ComplaintRepository
	userRepo      repositories.UserRepository
	mailer        *MailerService
}

// NewComplaintService creates a new complaint service
func NewComplaintService(complaintRepo *repositories.ComplaintRepository, userRepo repositories.UserRepository, mailer *MailerService) *ComplaintService {
	return &ComplaintService{complaintRepo: complaintRepo, userRepo: userRepo, mailer: mailer}
}

// CreateComplaintInput represents a newly raised complaint
type CreateComplaintInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=plumbing electrical cleaning furniture internet food security noise other"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	RoomID      *uint  `json:"room_id"`
	Location    string `json:"location" validate:"omitempty,max=100"`
	Tags        string `json:"tags" validate:"omitempty,max=255"`
}

// UpdateStatusInput moves a complaint through its lifecycle
type UpdateStatusInput struct {
	Status  string `json:"status" validate:"required,oneof=pending in_progress resolved closed rejected"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// AssignComplaintInput assigns a complaint to a staff member
type AssignComplaintInput struct {
	AssignedTo uint `json:"assigned_to" validate:"required"`
}

// ResolveComplaintInput closes out a complaint with its resolution
// record
type ResolveComplaintInput struct {
	Description string  `json:"description" validate:"required"`
	Cost        float64 `json:"cost" validate:"min=0"`
}

// FeedbackInput carries the reporter's rating of the resolution
type FeedbackInput struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"omitempty,max=500"`
}

// ComplaintStats summarizes complaints for dashboards
type ComplaintStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
}

// Create raises a complaint on behalf of the reporter. Priority
// defaults to medium and the expected resolution date follows from it.
func (s *ComplaintService) Create(ctx context.Context, reporterID uint, input *CreateComplaintInput) (*models.Complaint, error) {
	now := time.Now()

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	expected := now.Add(time.Duration(expectedResolutionHours[priority]) * time.Hour)
	cp := &models.Complaint{
		ComplaintID:            idgen.ComplaintID(now),
		Title:                  input.Title,
		Description:            input.Description,
		Category:               input.Category,
		Priority:               priority,
		Status:                 models.ComplaintStatusPending,
		ReportedBy:             reporterID,
		RoomID:                 input.RoomID,
		Location:               input.Location,
		Tags:                   input.Tags,
		ExpectedResolutionDate: &expected,
	}
	cp.SyncUrgentFlag()

	// Seed the audit trail with the opening entry
	cp.StatusHistory = append(cp.StatusHistory, models.ComplaintStatusLog{
		Status:    models.ComplaintStatusPending,
		UpdatedBy: reporterID,
		UpdatedAt: now,
		Comment:   "Complaint raised",
	})

	if err := s.complaintRepo.Create(ctx, cp); err != nil {
		return nil, err
	}

	log.Printf("✅ Complaint raised: %s [%s/%s]", cp.ComplaintID, cp.Category, cp.Priority)
	return cp, nil
}

// GetByID fetches one complaint, enforcing the owner-or-staff rule
func (s *ComplaintService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*models.Complaint, error) {
	cp, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	if !actor.CanActOn(cp.ReportedBy) {
		return nil, ErrComplaintNotOwned
	}
	return cp, nil
}

// List lists complaints. Students are always scoped to their own.
func (s *ComplaintService) List(ctx context.Context, actor domain.Actor, f repositories.ComplaintFilter) ([]*models.Complaint, int64, error) {
	if !actor.Role.IsStaff() {
		f.ReportedBy = &actor.ID
	}
	return s.complaintRepo.List(ctx, f)
}

// UpdateStatus moves the complaint to a new state and appends exactly
// one audit entry. Terminal complaints cannot move again.
func (s *ComplaintService) UpdateStatus(ctx context.Context, actor domain.Actor, id uint, input *UpdateStatusInput) (*models.Complaint, error) {
	cp, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if cp.IsTerminal() {
		return nil, ErrComplaintTerminal
	}

	cp.UpdateStatus(input.Status, actor.ID, input.Comment, time.Now())

	if err := s.complaintRepo.Update(ctx, cp); err != nil {
		return nil, err
	}

	s.notifyReporter(ctx, cp)

	log.Printf("✅ Complaint %s moved to %s by user %d", cp.ComplaintID, input.Status, actor.ID)
	return cp, nil
}

// Assign hands the complaint to a staff member and moves it to
// in_progress.
func (s *ComplaintService) Assign(ctx context.Context, actor domain.Actor, id uint, input *AssignComplaintInput) (*models.Complaint, error) {
	cp, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if cp.IsTerminal() {
		return nil, ErrComplaintTerminal
	}

	// Assignee must hold a staff role
	assignee, err := s.userRepo.GetByID(ctx, input.AssignedTo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !domain.Role(assignee.Role).IsStaff() {
		return nil, ErrAssigneeNotStaff
	}

	cp.AssignedTo = &assignee.ID
	cp.UpdateStatus(models.ComplaintStatusInProgress, actor.ID, "Assigned to "+assignee.FullName(), time.Now())

	if err := s.complaintRepo.Update(ctx, cp); err != nil {
		return nil, err
	}

	s.notifyReporter(ctx, cp)

	log.Printf("✅ Complaint %s assigned to %s", cp.ComplaintID, assignee.Email)
	return cp, nil
}

// Resolve records the resolution and moves the complaint to resolved
func (s *ComplaintService) Resolve(ctx context.Context, actor domain.Actor, id uint, input *ResolveComplaintInput) (*models.Complaint, error) {
	cp, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if cp.IsTerminal() {
		return nil, ErrComplaintTerminal
	}

	now := time.Now()
	cp.Resolution.Description = input.Description
	cp.Resolution.Cost = input.Cost
	cp.Resolution.ResolvedBy = &actor.ID
	cp.Resolution.ResolvedAt = &now
	cp.UpdateStatus(models.ComplaintStatusResolved, actor.ID, input.Description, now)

	if err := s.complaintRepo.Update(ctx, cp); err != nil {
		return nil, err
	}

	s.notifyReporter(ctx, cp)

	log.Printf("✅ Complaint %s resolved by user %d", cp.ComplaintID, actor.ID)
	return cp, nil
}

// SubmitFeedback lets the reporter rate a resolved complaint
func (s *ComplaintService) SubmitFeedback(ctx context.Context, actor domain.Actor, id uint, input *FeedbackInput) (*models.Complaint, error) {
	cp, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	// Only the reporter rates, only after resolution
	if cp.ReportedBy != actor.ID {
		return nil, ErrComplaintNotOwned
	}
	if cp.Status != models.ComplaintStatusResolved && cp.Status != models.ComplaintStatusClosed {
		return nil, ErrComplaintUnresolved
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	cp.Resolution.Rating = input.Rating
	cp.Resolution.Feedback = input.Feedback

	if err := s.complaintRepo.Update(ctx, cp); err != nil {
		return nil, err
	}

	log.Printf("✅ Feedback recorded on complaint %s (rating %d)", cp.ComplaintID, input.Rating)
	return cp, nil
}

// notifyReporter mails the student behind the complaint. Best effort:
// a missing reporter or a dead SMTP link never fails the transition.
func (s *ComplaintService) notifyReporter(ctx context.Context, cp *models.Complaint) {
	reporter := cp.Reporter
	if reporter == nil {
		reporter, _ = s.userRepo.GetByID(ctx, cp.ReportedBy)
	}
	if reporter != nil {
		s.mailer.SendComplaintUpdate(reporter, cp)
	}
}

// Delete removes a complaint (admin only, enforced at the route)
func (s *ComplaintService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComplaintNotFound
		}
		return err
	}

	// Students may withdraw their own complaint while it is still
	// pending; staff may delete at any point.
	if !actor.Role.IsStaff() {
		if complaint.ReportedBy != actor.ID {
			return ErrComplaintNotOwned
		}
		if complaint.Status != models.ComplaintStatusPending {
			return ErrComplaintTerminal
		}
	}
	return s.complaintRepo.Delete(ctx, id)
}

// Stats summarizes complaints for dashboards
func (s *ComplaintService) Stats(ctx context.Context) (*ComplaintStats, error) {
	byStatus, err := s.complaintRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.complaintRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range byStatus {
		total += c
	}

	return &ComplaintStats{
		Total:      total,
		ByStatus:   byStatus,
		ByCategory: byCategory,
	}, nil
}
