package repositories

import (
	"context"

	"hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LeaveRepository handles leave data access
type LeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// LeaveFilter narrows leave listings
type LeaveFilter struct {
	StudentID *uint
	Status    string
	LeaveType string
	Offset    int
	Limit     int
}

// Create creates a new leave
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

// GetByID gets a leave by ID with relations
func (r *LeaveRepository) GetByID(ctx context.Context, id uint) (*models.Leave, error) {
	var leave models.Leave
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Approver").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at ASC")
		}).
		Preload("ExtensionRequests", func(db *gorm.DB) *gorm.DB {
			return db.Order("requested_date ASC")
		}).
		First(&leave, id).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// Update saves the leave row and any new history/extension rows
func (r *LeaveRepository) Update(ctx context.Context, leave *models.Leave) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(leave).Error
}

// Delete soft deletes a leave
func (r *LeaveRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Leave{}, id).Error
}

// List lists leaves with filters and pagination
func (r *LeaveRepository) List(ctx context.Context, f LeaveFilter) ([]*models.Leave, int64, error) {
	var leaves []*models.Leave
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Leave{})
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.LeaveType != "" {
		q = q.Where("leave_type = ?", f.LeaveType)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Student").
		Order("created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&leaves).Error

	return leaves, total, err
}

// CountByStatus returns leave counts grouped by status
func (r *LeaveRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Leave{}).
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

// ListBetween lists leaves starting inside a date range (reports)
func (r *LeaveRepository) ListBetween(ctx context.Context, start, end string) ([]*models.Leave, error) {
	var leaves []*models.Leave
	q := r.db.WithContext(ctx).Preload("Student")
	if start != "" {
		q = q.Where("start_date >= ?", start)
	}
	if end != "" {
		q = q.Where("start_date <= ?", end)
	}
	err := q.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}
