package repositories

import (
	"context"
	"time"

	"hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AnnouncementRepository handles announcement data access
type AnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// AnnouncementFilter narrows announcement listings
type AnnouncementFilter struct {
	Status   string
	Type     string
	Priority string

	// VisibleTo restricts results to announcements a non-staff viewer
	// is allowed to see. Nil means no visibility filtering (staff).
	VisibleTo *AnnouncementViewer

	Offset int
	Limit  int
}

// AnnouncementViewer identifies the non-staff viewer for visibility
// filtering.
type AnnouncementViewer struct {
	UserID uint
	Role   string
	Now    time.Time
}

// Create creates a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetByID gets an announcement by ID with relations
func (r *AnnouncementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("TargetUsers").
		Preload("Attachments").
		Preload("ReadBy").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("commented_at ASC")
		}).
		Preload("Comments.User").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update saves the announcement row and any new engagement rows
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(a).Error
}

// DeleteLikeRow removes one user's like row (unlike half of the toggle)
func (r *AnnouncementRepository) DeleteLikeRow(ctx context.Context, announcementID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		Delete(&models.AnnouncementLike{}).Error
}

// Delete soft deletes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

// List lists announcements with filters and pagination. Sticky
// announcements sort first regardless of recency.
func (r *AnnouncementRepository) List(ctx context.Context, f AnnouncementFilter) ([]*models.Announcement, int64, error) {
	var items []*models.Announcement
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Announcement{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	if v := f.VisibleTo; v != nil {
		q = q.Where("status = ?", models.AnnouncementStatusPublished).
			Where("expiry_date IS NULL OR expiry_date >= ?", v.Now).
			Where(
				"target_audience IN ? OR (target_audience = ? AND id IN (?))",
				[]string{models.AudienceAll, audienceForRole(v.Role)},
				models.AudienceSpecificUsers,
				r.db.Model(&models.AnnouncementTarget{}).
					Select("announcement_id").
					Where("user_id = ?", v.UserID),
			)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Creator").
		Preload("Likes").
		Preload("Comments").
		Order("is_sticky DESC, publish_date DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&items).Error

	return items, total, err
}

func audienceForRole(role string) string {
	switch role {
	case "student":
		return models.AudienceStudents
	case "warden":
		return models.AudienceWardens
	case "admin":
		return models.AudienceAdmins
	default:
		return models.AudienceAll
	}
}

// ListExpired lists published announcements past their expiry date
// (cron sweep input).
func (r *AnnouncementRepository) ListExpired(ctx context.Context, now time.Time) ([]*models.Announcement, error) {
	var items []*models.Announcement
	err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date < ?", models.AnnouncementStatusPublished, now).
		Find(&items).Error
	return items, err
}

// CountByStatus returns announcement counts grouped by status
func (r *AnnouncementRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
