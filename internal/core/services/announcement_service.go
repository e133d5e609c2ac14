package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/domain"

	"gorm.io/gorm"
)

// Announcement errors
var (
	ErrAnnouncementNotFound   = errors.New("announcement not found")
	ErrAnnouncementNotVisible = errors.New("announcement is not visible to this user")
	ErrAnnouncementNotDraft   = errors.New("only drafts can be published")
	ErrTargetsRequired        = errors.New("specific_users announcements need at least one target user")
)

// AnnouncementService handles the announcement lifecycle and
// engagement.
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
	userRepo         repositories.UserRepository
	mailer           *MailerService
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(
	announcementRepo *repositories.AnnouncementRepository,
	userRepo repositories.UserRepository,
	mailer *MailerService,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
		mailer:           mailer,
	}
}

// CreateAnnouncementInput represents a new announcement
type CreateAnnouncementInput struct {
	Title          string `json:"title" validate:"required,max=200"`
	Content        string `json:"content" validate:"required"`
	Type           string `json:"type" validate:"omitempty,oneof=general urgent event maintenance fee_reminder holiday"`
	Priority       string `json:"priority" validate:"omitempty,oneof=low medium high"`
	TargetAudience string `json:"target_audience" validate:"omitempty,oneof=all students wardens admins specific_users"`
	TargetUserIDs  []uint `json:"target_user_ids"`
	ExpiryDate     string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Tags           string `json:"tags" validate:"omitempty,max=255"`
	IsSticky       bool   `json:"is_sticky"`
	Publish        bool   `json:"publish"`
	SendEmail      bool   `json:"send_email"`
}

// UpdateAnnouncementInput edits an announcement. Nil fields are
// untouched.
type UpdateAnnouncementInput struct {
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Content    *string `json:"content"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	ExpiryDate *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Tags       *string `json:"tags" validate:"omitempty,max=255"`
	IsSticky   *bool   `json:"is_sticky"`
}

// CommentInput appends one comment
type CommentInput struct {
	Comment string `json:"comment" validate:"required,max=500"`
}

// Create creates an announcement, optionally publishing it right away
func (s *AnnouncementService) Create(ctx context.Context, createdBy uint, input *CreateAnnouncementInput) (*models.Announcement, error) {
	now := time.Now()

	audience := input.TargetAudience
	if audience == "" {
		audience = models.AudienceAll
	}
	if audience == models.AudienceSpecificUsers && len(input.TargetUserIDs) == 0 {
		return nil, ErrTargetsRequired
	}

	a := &models.Announcement{
		Title:          input.Title,
		Content:        input.Content,
		Type:           defaultString(input.Type, "general"),
		Priority:       defaultString(input.Priority, "medium"),
		TargetAudience: audience,
		CreatedBy:      createdBy,
		PublishDate:    now,
		Status:         models.AnnouncementStatusDraft,
		Tags:           input.Tags,
		IsSticky:       input.IsSticky,
	}

	if input.ExpiryDate != "" {
		if expiry, err := time.Parse("2006-01-02", input.ExpiryDate); err == nil {
			// Expiry covers the whole named day
			endOfDay := expiry.Add(24*time.Hour - time.Second)
			a.ExpiryDate = &endOfDay
		}
	}

	for _, userID := range input.TargetUserIDs {
		a.TargetUsers = append(a.TargetUsers, models.AnnouncementTarget{UserID: userID})
	}

	if input.Publish {
		a.Status = models.AnnouncementStatusPublished
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	if input.Publish && input.SendEmail {
		s.broadcastEmail(ctx, a)
	}

	log.Printf("✅ Announcement created: %q [%s, audience %s]", a.Title, a.Status, a.TargetAudience)
	return a, nil
}

// GetByID fetches one announcement, enforcing visibility for non-staff
// viewers. A successful student read is recorded on the read list.
func (s *AnnouncementService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if !actor.Role.IsStaff() {
		if !a.IsVisibleTo(string(actor.Role), actor.ID, time.Now()) {
			return nil, ErrAnnouncementNotVisible
		}
		if a.MarkAsRead(actor.ID, time.Now()) {
			if err := s.announcementRepo.Update(ctx, a); err != nil {
				log.Printf("⚠️ Read tracking failed for announcement %d: %v", a.ID, err)
			}
		}
	}

	return a, nil
}

// List lists announcements. Non-staff viewers only see what is live
// and addressed to them.
func (s *AnnouncementService) List(ctx context.Context, actor domain.Actor, f repositories.AnnouncementFilter) ([]*models.Announcement, int64, error) {
	if !actor.Role.IsStaff() {
		f.VisibleTo = &repositories.AnnouncementViewer{
			UserID: actor.ID,
			Role:   string(actor.Role),
			Now:    time.Now(),
		}
	}
	return s.announcementRepo.List(ctx, f)
}

// Update edits an announcement
func (s *AnnouncementService) Update(ctx context.Context, id uint, input *UpdateAnnouncementInput) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		a.Title = *input.Title
	}
	if input.Content != nil {
		a.Content = *input.Content
	}
	if input.Priority != nil {
		a.Priority = *input.Priority
	}
	if input.ExpiryDate != nil {
		if expiry, err := time.Parse("2006-01-02", *input.ExpiryDate); err == nil {
			endOfDay := expiry.Add(24*time.Hour - time.Second)
			a.ExpiryDate = &endOfDay
		}
	}
	if input.Tags != nil {
		a.Tags = *input.Tags
	}
	if input.IsSticky != nil {
		a.IsSticky = *input.IsSticky
	}
	a.RefreshExpiry(time.Now())

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	log.Printf("✅ Announcement %d updated", a.ID)
	return a, nil
}

// Publish moves a draft live, optionally mailing the audience
func (s *AnnouncementService) Publish(ctx context.Context, id uint, sendEmail bool) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if a.Status != models.AnnouncementStatusDraft {
		return nil, ErrAnnouncementNotDraft
	}

	a.Status = models.AnnouncementStatusPublished
	a.PublishDate = time.Now()

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if sendEmail {
		s.broadcastEmail(ctx, a)
	}

	log.Printf("✅ Announcement published: %q", a.Title)
	return a, nil
}

// Archive retires an announcement from every feed
func (s *AnnouncementService) Archive(ctx context.Context, id uint) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	a.Status = models.AnnouncementStatusArchived

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	log.Printf("✅ Announcement archived: %q", a.Title)
	return a, nil
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return s.announcementRepo.Delete(ctx, id)
}

// ToggleLike flips the viewer's like. Returns whether the announcement
// is liked after the call.
func (s *AnnouncementService) ToggleLike(ctx context.Context, actor domain.Actor, id uint) (*models.Announcement, bool, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrAnnouncementNotFound
		}
		return nil, false, err
	}

	if !actor.Role.IsStaff() && !a.IsVisibleTo(string(actor.Role), actor.ID, time.Now()) {
		return nil, false, ErrAnnouncementNotVisible
	}

	liked := a.ToggleLike(actor.ID, time.Now())
	if liked {
		err = s.announcementRepo.Update(ctx, a)
	} else {
		// Unliking deletes the row; FullSaveAssociations only upserts
		err = s.announcementRepo.DeleteLikeRow(ctx, a.ID, actor.ID)
	}
	if err != nil {
		return nil, false, err
	}

	return a, liked, nil
}

// AddComment appends a comment from the viewer
func (s *AnnouncementService) AddComment(ctx context.Context, actor domain.Actor, id uint, input *CommentInput) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if !actor.Role.IsStaff() && !a.IsVisibleTo(string(actor.Role), actor.ID, time.Now()) {
		return nil, ErrAnnouncementNotVisible
	}

	a.AddComment(actor.ID, input.Comment, time.Now())

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	log.Printf("✅ Comment added on announcement %d by user %d", a.ID, actor.ID)
	return a, nil
}

// SweepExpired flips published announcements past their expiry to
// expired. Called from the daily cron job.
func (s *AnnouncementService) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now()
	items, err := s.announcementRepo.ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, a := range items {
		a.RefreshExpiry(now)
		if err := s.announcementRepo.Update(ctx, a); err != nil {
			log.Printf("⚠️ Expiry sweep failed for announcement %d: %v", a.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}

// Stats summarizes announcements for dashboards
func (s *AnnouncementService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.announcementRepo.CountByStatus(ctx)
}

// broadcastEmail mails the announcement to its audience, best effort
func (s *AnnouncementService) broadcastEmail(ctx context.Context, a *models.Announcement) {
	var recipients []*models.User
	var err error

	switch a.TargetAudience {
	case models.AudienceStudents:
		recipients, err = s.userRepo.ListByRole(ctx, "student")
	case models.AudienceWardens:
		recipients, err = s.userRepo.ListByRole(ctx, "warden")
	case models.AudienceAdmins:
		recipients, err = s.userRepo.ListByRole(ctx, "admin")
	case models.AudienceSpecificUsers:
		for _, t := range a.TargetUsers {
			if u, uerr := s.userRepo.GetByID(ctx, t.UserID); uerr == nil {
				recipients = append(recipients, u)
			}
		}
	default:
		for _, role := range []string{"student", "warden", "admin"} {
			users, lerr := s.userRepo.ListByRole(ctx, role)
			if lerr != nil {
				err = lerr
				break
			}
			recipients = append(recipients, users...)
		}
	}
	if err != nil {
		log.Printf("⚠️ Announcement mail recipients lookup failed: %v", err)
		return
	}

	for _, u := range recipients {
		s.mailer.SendAnnouncement(u, a)
	}
	a.EmailSent = true
	if err := s.announcementRepo.Update(ctx, a); err != nil {
		log.Printf("⚠️ Email flag update failed for announcement %d: %v", a.ID, err)
	}
}

// defaultString returns fallback when s is empty
func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
