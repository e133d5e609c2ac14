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

// Fee errors
var (
	ErrFeeNotFound   = errors.New("fee not found")
	ErrFeeNotOwned   = errors.New("fee belongs to another student")
	ErrFeeSettled    = errors.New("fee is already settled")
	ErrFeeNotWaivable = errors.New("only unpaid fees can be waived")
)

// FeeService handles billing and the payment ledger
type FeeService struct {
	feeRepo  *repositories.FeeRepository
	userRepo repositories.UserRepository
	mailer   *MailerService
}

// NewFeeService creates a new fee service
func NewFeeService(feeRepo *repositories.FeeRepository, userRepo repositories.UserRepository, mailer *MailerService) *FeeService {
	return &FeeService{feeRepo: feeRepo, userRepo: userRepo, mailer: mailer}
}

// CreateFeeInput represents one billed charge
type CreateFeeInput struct {
	StudentID   uint    `json:"student_id" validate:"required"`
	FeeType     string  `json:"fee_type" validate:"required,oneof=room_rent mess_fee security_deposit maintenance electricity water internet other"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	LateFee     float64 `json:"late_fee" validate:"min=0"`
	Discount    float64 `json:"discount" validate:"min=0"`
	DueDate     string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Month       int     `json:"month" validate:"required,min=1,max=12"`
	Year        int     `json:"year" validate:"required,min=2000"`
	RoomID      *uint   `json:"room_id"`
	Description string  `json:"description" validate:"omitempty,max=255"`
	Notes       string  `json:"notes"`
}

// UpdateFeeInput adjusts the billed amounts. Nil fields are untouched.
type UpdateFeeInput struct {
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	LateFee  *float64 `json:"late_fee" validate:"omitempty,min=0"`
	Discount *float64 `json:"discount" validate:"omitempty,min=0"`
	DueDate  *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes    *string  `json:"notes"`
}

// PaymentInput records one payment against a fee
type PaymentInput struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card upi bank_transfer cheque online"`
	TransactionID string  `json:"transaction_id" validate:"omitempty,max=100"`
}

// FeeStats summarizes billing for dashboards
type FeeStats struct {
	TotalBilled      float64 `json:"total_billed"`
	TotalCollected   float64 `json:"total_collected"`
	TotalOutstanding float64 `json:"total_outstanding"`
	CollectionRate   int     `json:"collection_rate"`
}

// Create bills one charge to a student
func (s *FeeService) Create(ctx context.Context, createdBy uint, input *CreateFeeInput) (*models.Fee, error) {
	// 1. The student must exist and hold the student role
	student, err := s.userRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !student.IsStudent() {
		return nil, ErrNotAStudent
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		return nil, err
	}

	// 2. Build the fee; derived fields come from the recompute
	fee := &models.Fee{
		StudentID:   input.StudentID,
		FeeType:     input.FeeType,
		Amount:      input.Amount,
		LateFee:     input.LateFee,
		Discount:    input.Discount,
		DueDate:     dueDate,
		Month:       input.Month,
		Year:        input.Year,
		RoomID:      input.RoomID,
		Description: input.Description,
		Notes:       input.Notes,
		CreatedBy:   &createdBy,
	}
	fee.Recalculate(time.Now())

	if err := s.feeRepo.Create(ctx, fee); err != nil {
		return nil, err
	}

	log.Printf("✅ Fee billed: %s %.2f to student %d (due %s)", fee.FeeType, fee.FinalAmount, fee.StudentID, input.DueDate)
	return fee, nil
}

// GetByID fetches one fee, enforcing the owner-or-staff rule
func (s *FeeService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*models.Fee, error) {
	fee, err := s.feeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}

	if !actor.CanActOn(fee.StudentID) {
		return nil, ErrFeeNotOwned
	}
	return fee, nil
}

// List lists fees. Students are always scoped to their own.
func (s *FeeService) List(ctx context.Context, actor domain.Actor, f repositories.FeeFilter) ([]*models.Fee, int64, error) {
	if !actor.Role.IsStaff() {
		f.StudentID = &actor.ID
	}
	return s.feeRepo.List(ctx, f)
}

// Update adjusts the billed amounts and re-runs the recompute
func (s *FeeService) Update(ctx context.Context, actor domain.Actor, id uint, input *UpdateFeeInput) (*models.Fee, error) {
	fee, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		fee.Amount = *input.Amount
	}
	if input.LateFee != nil {
		fee.LateFee = *input.LateFee
	}
	if input.Discount != nil {
		fee.Discount = *input.Discount
	}
	if input.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			return nil, err
		}
		fee.DueDate = dueDate
	}
	if input.Notes != nil {
		fee.Notes = *input.Notes
	}
	fee.UpdatedBy = &actor.ID
	fee.Recalculate(time.Now())

	if err := s.feeRepo.Update(ctx, fee); err != nil {
		return nil, err
	}

	log.Printf("✅ Fee %d updated (final %.2f, status %s)", fee.ID, fee.FinalAmount, fee.Status)
	return fee, nil
}

// RecordPayment appends a payment to the ledger. Payments above the
// remaining balance are rejected outright.
func (s *FeeService) RecordPayment(ctx context.Context, actor domain.Actor, id uint, input *PaymentInput) (*models.Fee, error) {
	fee, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if fee.Status == models.FeeStatusPaid || fee.Status == models.FeeStatusWaived {
		return nil, ErrFeeSettled
	}

	now := time.Now()
	payment := models.FeePayment{
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
		PaidBy:        &actor.ID,
	}

	if err := fee.AddPayment(payment, now, func() string { return idgen.ReceiptNumber(now) }); err != nil {
		return nil, err
	}
	fee.UpdatedBy = &actor.ID

	if err := s.feeRepo.Update(ctx, fee); err != nil {
		return nil, err
	}

	// Receipt mail is best effort
	if fee.Student == nil {
		fee.Student, _ = s.userRepo.GetByID(ctx, fee.StudentID)
	}
	if fee.Student != nil {
		s.mailer.SendPaymentReceipt(fee.Student, fee, input.Amount)
	}

	log.Printf("✅ Payment %.2f recorded on fee %d (status %s, balance %.2f)", input.Amount, fee.ID, fee.Status, fee.BalanceAmount)
	return fee, nil
}

// Waive forgives an unpaid fee. Waived status is permanent.
func (s *FeeService) Waive(ctx context.Context, actor domain.Actor, id uint, reason string) (*models.Fee, error) {
	fee, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if fee.Status == models.FeeStatusPaid || fee.Status == models.FeeStatusWaived {
		return nil, ErrFeeNotWaivable
	}

	fee.Status = models.FeeStatusWaived
	if reason != "" {
		fee.Notes = reason
	}
	fee.UpdatedBy = &actor.ID

	if err := s.feeRepo.Update(ctx, fee); err != nil {
		return nil, err
	}

	log.Printf("✅ Fee %d waived by user %d", fee.ID, actor.ID)
	return fee, nil
}

// Remind dispatches one payment reminder for an unsettled fee and
// appends a reminder log row.
func (s *FeeService) Remind(ctx context.Context, actor domain.Actor, id uint) (*models.Fee, error) {
	fee, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if fee.Status == models.FeeStatusPaid || fee.Status == models.FeeStatusWaived {
		return nil, ErrFeeSettled
	}

	now := time.Now()
	if fee.Student == nil {
		student, err := s.userRepo.GetByID(ctx, fee.StudentID)
		if err != nil {
			return nil, err
		}
		fee.Student = student
	}
	s.mailer.SendFeeReminder(fee.Student, fee)
	fee.AddReminder(models.ReminderTypeEmail, models.ReminderStatusSent, now)

	if err := s.feeRepo.Update(ctx, fee); err != nil {
		return nil, err
	}

	log.Printf("✅ Reminder sent for fee %d by user %d", fee.ID, actor.ID)
	return fee, nil
}

// ListDefaulters lists students with overdue balances
func (s *FeeService) ListDefaulters(ctx context.Context) ([]*models.Fee, error) {
	return s.feeRepo.ListDefaulters(ctx)
}

// Stats summarizes billing totals
func (s *FeeService) Stats(ctx context.Context) (*FeeStats, error) {
	billed, collected, outstanding, err := s.feeRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	stats := &FeeStats{
		TotalBilled:      billed,
		TotalCollected:   collected,
		TotalOutstanding: outstanding,
	}
	if billed > 0 {
		stats.CollectionRate = int(collected/billed*100 + 0.5)
	}
	return stats, nil
}

// SweepOverdue flips pending fees past their due date to overdue.
// Called from the daily cron job.
func (s *FeeService) SweepOverdue(ctx context.Context) (int, error) {
	now := time.Now()
	fees, err := s.feeRepo.ListPendingPastDue(ctx, now)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, fee := range fees {
		fee.Recalculate(now)
		if fee.Status != models.FeeStatusOverdue {
			continue
		}
		if err := s.feeRepo.Update(ctx, fee); err != nil {
			log.Printf("⚠️ Overdue sweep failed for fee %d: %v", fee.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}

// SendDueReminders mails students about fees due within the window and
// logs each dispatch on the fee. Called from the daily cron job.
func (s *FeeService) SendDueReminders(ctx context.Context, days int) (int, error) {
	now := time.Now()
	fees, err := s.feeRepo.ListDueSoon(ctx, now, days)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, fee := range fees {
		if fee.Student == nil {
			continue
		}
		s.mailer.SendFeeReminder(fee.Student, fee)
		fee.AddReminder(models.ReminderTypeEmail, models.ReminderStatusSent, now)
		if err := s.feeRepo.Update(ctx, fee); err != nil {
			log.Printf("⚠️ Reminder log failed for fee %d: %v", fee.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
