package repositories

import (
	"context"

	"hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ComplaintRepository handles complaint data access
type ComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// ComplaintFilter narrows complaint listings
type ComplaintFilter struct {
	Status     string
	Category   string
	Priority   string
	ReportedBy *uint
	AssignedTo *uint
	Offset     int
	Limit      int
}

// Create creates a new complaint
func (r *ComplaintRepository) Create(ctx context.Context, cp *models.Complaint) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

// GetByID gets a complaint by ID with relations
func (r *ComplaintRepository) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var cp models.Complaint
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("Assignee").
		Preload("Room").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at ASC")
		}).
		Preload("StatusHistory.Actor").
		First(&cp, id).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Update saves the complaint row and any new status log rows
func (r *ComplaintRepository) Update(ctx context.Context, cp *models.Complaint) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(cp).Error
}

// Delete soft deletes a complaint
func (r *ComplaintRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Complaint{}, id).Error
}

// List lists complaints with filters and pagination
func (r *ComplaintRepository) List(ctx context.Context, f ComplaintFilter) ([]*models.Complaint, int64, error) {
	var complaints []*models.Complaint
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Complaint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.ReportedBy != nil {
		q = q.Where("reported_by = ?", *f.ReportedBy)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Reporter").
		Preload("Assignee").
		Order("created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&complaints).Error

	return complaints, total, err
}

// CountByStatus returns complaint counts grouped by status
func (r *ComplaintRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).
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

// CountByCategory returns complaint counts grouped by category
func (r *ComplaintRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Category] = rw.Count
	}
	return counts, nil
}

// ListBetween lists complaints created inside a date range (reports)
func (r *ComplaintRepository) ListBetween(ctx context.Context, start, end string) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	q := r.db.WithContext(ctx).Preload("Reporter")
	if start != "" {
		q = q.Where("created_at >= ?", start)
	}
	if end != "" {
		q = q.Where("created_at <= ?", end)
	}
	err := q.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}
