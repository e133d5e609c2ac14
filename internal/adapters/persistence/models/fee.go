package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Fee status
const (
	FeeStatusPending = "pending"
	FeeStatusOverdue = "overdue"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
	FeeStatusWaived  = "waived"
)

// Fee types
const (
	FeeTypeRoomRent        = "room_rent"
	FeeTypeMess            = "mess_fee"
	FeeTypeSecurityDeposit = "security_deposit"
	FeeTypeMaintenance     = "maintenance"
	FeeTypeElectricity     = "electricity"
	FeeTypeWater           = "water"
	FeeTypeInternet        = "internet"
	FeeTypeOther           = "other"
)

// ErrOverpayment rejects payments above the remaining balance. A
// payment larger than the balance is refused, never silently capped.
var ErrOverpayment = errors.New("payment exceeds balance amount")

// Fee represents fees table
type Fee struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"not null;index" json:"student_id"`
	FeeType   string `gorm:"size:20;not null;index" json:"fee_type"`

	Amount   float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	LateFee  float64 `gorm:"type:decimal(10,2);default:0" json:"late_fee"`
	Discount float64 `gorm:"type:decimal(10,2);default:0" json:"discount"`

	// Derived columns, recomputed by Recalculate
	FinalAmount   float64 `gorm:"type:decimal(10,2);not null" json:"final_amount"`
	PaidAmount    float64 `gorm:"type:decimal(10,2);default:0" json:"paid_amount"`
	BalanceAmount float64 `gorm:"type:decimal(10,2);default:0" json:"balance_amount"`
	Status        string  `gorm:"size:10;default:'pending';index" json:"status"`

	DueDate       time.Time  `gorm:"not null;index" json:"due_date"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	Month         int        `gorm:"not null;index" json:"month"`
	Year          int        `gorm:"not null;index" json:"year"`
	PaymentMethod string     `gorm:"size:20" json:"payment_method,omitempty"`
	TransactionID string     `gorm:"size:100" json:"transaction_id,omitempty"`
	ReceiptNumber string     `gorm:"size:20" json:"receipt_number,omitempty"`

	RoomID      *uint  `json:"room_id,omitempty"`
	Description string `gorm:"size:255" json:"description,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   *uint  `json:"created_by,omitempty"`
	UpdatedBy   *uint  `json:"updated_by,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Student        *User         `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	PaymentHistory []FeePayment  `gorm:"foreignKey:FeeID" json:"payment_history,omitempty"`
	Reminders      []FeeReminder `gorm:"foreignKey:FeeID" json:"reminders,omitempty"`
}

func (Fee) TableName() string {
	return "fees"
}

// FeePayment is one entry in the append-only payment history
type FeePayment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FeeID         uint      `gorm:"not null;index" json:"fee_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaidDate      time.Time `gorm:"not null" json:"paid_date"`
	PaymentMethod string    `gorm:"size:20;not null" json:"payment_method"`
	TransactionID string    `gorm:"size:100" json:"transaction_id,omitempty"`
	ReceiptNumber string    `gorm:"size:20" json:"receipt_number,omitempty"`
	PaidBy        *uint     `json:"paid_by,omitempty"`
}

func (FeePayment) TableName() string {
	return "fee_payments"
}

// Reminder channels / delivery states
const (
	ReminderTypeEmail        = "email"
	ReminderTypeSMS          = "sms"
	ReminderTypeNotification = "notification"

	ReminderStatusSent      = "sent"
	ReminderStatusDelivered = "delivered"
	ReminderStatusFailed    = "failed"
)

// FeeReminder logs one dispatched payment reminder
type FeeReminder struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	FeeID    uint      `gorm:"not null;index" json:"fee_id"`
	SentDate time.Time `gorm:"not null" json:"sent_date"`
	Type     string    `gorm:"size:15;not null" json:"type"`
	Status   string    `gorm:"size:10;not null" json:"status"`
}

func (FeeReminder) TableName() string {
	return "fee_reminders"
}

// Recalculate recomputes every derived field from the base amounts.
// Status is a pure function of (paidAmount, finalAmount, dueDate, now)
// and is never set directly, except for waived fees which stay waived.
func (f *Fee) Recalculate(now time.Time) {
	f.FinalAmount = f.Amount + f.LateFee - f.Discount
	f.BalanceAmount = f.FinalAmount - f.PaidAmount

	if f.Status == FeeStatusWaived {
		return
	}

	switch {
	case f.PaidAmount >= f.FinalAmount:
		f.Status = FeeStatusPaid
		if f.PaidDate == nil {
			f.PaidDate = &now
		}
	case now.After(f.DueDate):
		f.Status = FeeStatusOverdue
	case f.PaidAmount > 0:
		f.Status = FeeStatusPartial
	default:
		f.Status = FeeStatusPending
	}
}

// AddPayment appends to the payment history, bumps paidAmount and
// re-runs the recompute. receiptGen is invoked exactly once, the first
// time the fee becomes fully paid.
func (f *Fee) AddPayment(p FeePayment, now time.Time, receiptGen func() string) error {
	if p.Amount <= 0 {
		return errors.New("payment amount must be positive")
	}
	if p.Amount > f.BalanceAmount {
		return ErrOverpayment
	}

	if p.PaidDate.IsZero() {
		p.PaidDate = now
	}
	p.FeeID = f.ID
	f.PaymentHistory = append(f.PaymentHistory, p)
	f.PaidAmount += p.Amount
	f.PaymentMethod = p.PaymentMethod
	if p.TransactionID != "" {
		f.TransactionID = p.TransactionID
	}

	f.Recalculate(now)

	if f.Status == FeeStatusPaid && f.ReceiptNumber == "" {
		f.ReceiptNumber = receiptGen()
	}
	return nil
}

// AddReminder logs one reminder dispatch
func (f *Fee) AddReminder(kind, status string, now time.Time) {
	f.Reminders = append(f.Reminders, FeeReminder{
		FeeID:    f.ID,
		SentDate: now,
		Type:     kind,
		Status:   status,
	})
}

// DaysOverdue returns whole days past the due date for an unpaid fee
func (f *Fee) DaysOverdue(now time.Time) int {
	if f.Status != FeeStatusOverdue && !(f.Status == FeeStatusPending && now.After(f.DueDate)) {
		return 0
	}
	return int(now.Sub(f.DueDate).Hours() / 24)
}

// PaymentPercentage returns how much of the final amount is settled
func (f *Fee) PaymentPercentage() int {
	if f.FinalAmount == 0 {
		return 100
	}
	return int(f.PaidAmount/f.FinalAmount*100 + 0.5)
}
