package repositories

import (
	"context"
	"time"

	"hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// FeeRepository handles fee data access
type FeeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *gorm.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// FeeFilter narrows fee listings
type FeeFilter struct {
	StudentID *uint
	Status    string
	FeeType   string
	Month     int
	Year      int
	Offset    int
	Limit     int
}

// Create creates a new fee
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

// GetByID gets a fee by ID with relations
func (r *FeeRepository) GetByID(ctx context.Context, id uint) (*models.Fee, error) {
	var fee models.Fee
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("PaymentHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_date ASC")
		}).
		Preload("Reminders").
		First(&fee, id).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// Update saves the fee row and any new payment/reminder rows
func (r *FeeRepository) Update(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(fee).Error
}

// List lists fees with filters and pagination
func (r *FeeRepository) List(ctx context.Context, f FeeFilter) ([]*models.Fee, int64, error) {
	var fees []*models.Fee
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Fee{})
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FeeType != "" {
		q = q.Where("fee_type = ?", f.FeeType)
	}
	if f.Month != 0 {
		q = q.Where("month = ?", f.Month)
	}
	if f.Year != 0 {
		q = q.Where("year = ?", f.Year)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Student").
		Order("due_date DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&fees).Error

	return fees, total, err
}

// ListDefaulters lists fees in overdue/partial status with a positive
// balance.
func (r *FeeRepository) ListDefaulters(ctx context.Context) ([]*models.Fee, error) {
	var fees []*models.Fee
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status IN ? AND balance_amount > 0", []string{models.FeeStatusOverdue, models.FeeStatusPartial}).
		Order("due_date ASC").
		Find(&fees).Error
	return fees, err
}

// ListPendingPastDue lists pending fees whose due date has passed
// (cron sweep input).
func (r *FeeRepository) ListPendingPastDue(ctx context.Context, now time.Time) ([]*models.Fee, error) {
	var fees []*models.Fee
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", models.FeeStatusPending, now).
		Find(&fees).Error
	return fees, err
}

// ListDueSoon lists unpaid fees due within the window (reminder input)
func (r *FeeRepository) ListDueSoon(ctx context.Context, now time.Time, days int) ([]*models.Fee, error) {
	var fees []*models.Fee
	until := now.AddDate(0, 0, days)
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status IN ? AND due_date BETWEEN ? AND ?",
			[]string{models.FeeStatusPending, models.FeeStatusPartial}, now, until).
		Find(&fees).Error
	return fees, err
}

// ListBetween lists fees created inside a date range (reports)
func (r *FeeRepository) ListBetween(ctx context.Context, start, end string) ([]*models.Fee, error) {
	var fees []*models.Fee
	q := r.db.WithContext(ctx).Preload("Student")
	if start != "" {
		q = q.Where("created_at >= ?", start)
	}
	if end != "" {
		q = q.Where("created_at <= ?", end)
	}
	err := q.Order("due_date DESC").Find(&fees).Error
	return fees, err
}

// Totals returns billed, collected and outstanding sums
func (r *FeeRepository) Totals(ctx context.Context) (billed, collected, outstanding float64, err error) {
	type row struct {
		Billed      float64
		Collected   float64
		Outstanding float64
	}
	var rw row
	err = r.db.WithContext(ctx).Model(&models.Fee{}).
		Select("COALESCE(SUM(final_amount),0) as billed, COALESCE(SUM(paid_amount),0) as collected, COALESCE(SUM(balance_amount),0) as outstanding").
		Scan(&rw).Error
	return rw.Billed, rw.Collected, rw.Outstanding, err
}
