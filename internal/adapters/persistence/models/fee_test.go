package models

import (
	"errors"
	"testing"
	"time"
)

func newTestFee(amount float64, due time.Time) *Fee {
	f := &Fee{
		ID:        1,
		StudentID: 10,
		FeeType:   FeeTypeRoomRent,
		Amount:    amount,
		DueDate:   due,
		Month:     int(due.Month()),
		Year:      due.Year(),
	}
	f.Recalculate(due.AddDate(0, 0, -10))
	return f
}

func TestFeeRecalculate(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	t.Run("pending before due date", func(t *testing.T) {
		f := newTestFee(5000, due)
		if f.Status != FeeStatusPending {
			t.Errorf("status = %q, want %q", f.Status, FeeStatusPending)
		}
		if f.FinalAmount != 5000 || f.BalanceAmount != 5000 {
			t.Errorf("final = %v balance = %v, want 5000/5000", f.FinalAmount, f.BalanceAmount)
		}
	})

	t.Run("late fee and discount feed the final amount", func(t *testing.T) {
		f := newTestFee(5000, due)
		f.LateFee = 200
		f.Discount = 500
		f.Recalculate(due.AddDate(0, 0, -1))
		if f.FinalAmount != 4700 {
			t.Errorf("final = %v, want 4700", f.FinalAmount)
		}
	})

	t.Run("overdue after due date", func(t *testing.T) {
		f := newTestFee(5000, due)
		f.Recalculate(due.AddDate(0, 0, 5))
		if f.Status != FeeStatusOverdue {
			t.Errorf("status = %q, want %q", f.Status, FeeStatusOverdue)
		}
	})

	t.Run("partial when partly paid before due", func(t *testing.T) {
		f := newTestFee(5000, due)
		f.PaidAmount = 2000
		f.Recalculate(due.AddDate(0, 0, -1))
		if f.Status != FeeStatusPartial {
			t.Errorf("status = %q, want %q", f.Status, FeeStatusPartial)
		}
		if f.BalanceAmount != 3000 {
			t.Errorf("balance = %v, want 3000", f.BalanceAmount)
		}
	})

	t.Run("waived status is permanent", func(t *testing.T) {
		f := newTestFee(5000, due)
		f.Status = FeeStatusWaived
		f.Recalculate(due.AddDate(0, 0, 30))
		if f.Status != FeeStatusWaived {
			t.Errorf("status = %q, want %q", f.Status, FeeStatusWaived)
		}
	})
}

func TestFeeAddPayment(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, -2)
	receiptGen := func() string { return "RCP202608" }

	t.Run("full payment settles and stamps one receipt", func(t *testing.T) {
		f := newTestFee(5000, due)
		err := f.AddPayment(FeePayment{Amount: 5000, PaymentMethod: "upi"}, now, receiptGen)
		if err != nil {
			t.Fatalf("AddPayment() error = %v", err)
		}
		if f.Status != FeeStatusPaid {
			t.Errorf("status = %q, want %q", f.Status, FeeStatusPaid)
		}
		if f.ReceiptNumber != "RCP202608" {
			t.Errorf("receipt = %q, want RCP202608", f.ReceiptNumber)
		}
		if f.PaidDate == nil {
			t.Error("paid date not stamped")
		}
		if len(f.PaymentHistory) != 1 {
			t.Fatalf("history length = %d, want 1", len(f.PaymentHistory))
		}
	})

	t.Run("receipt is generated only once", func(t *testing.T) {
		calls := 0
		gen := func() string { calls++; return "RCP0001" }
		f := newTestFee(5000, due)
		if err := f.AddPayment(FeePayment{Amount: 5000, PaymentMethod: "cash"}, now, gen); err != nil {
			t.Fatalf("AddPayment() error = %v", err)
		}
		f.Recalculate(now)
		if f.ReceiptNumber != "RCP0001" || calls != 1 {
			t.Errorf("receipt = %q calls = %d, want RCP0001 and 1 call", f.ReceiptNumber, calls)
		}
	})

	t.Run("two partial payments accumulate", func(t *testing.T) {
		f := newTestFee(5000, due)
		if err := f.AddPayment(FeePayment{Amount: 2000, PaymentMethod: "cash"}, now, receiptGen); err != nil {
			t.Fatalf("first payment error = %v", err)
		}
		if f.Status != FeeStatusPartial {
			t.Errorf("status after first payment = %q, want %q", f.Status, FeeStatusPartial)
		}
		if err := f.AddPayment(FeePayment{Amount: 3000, PaymentMethod: "card"}, now, receiptGen); err != nil {
			t.Fatalf("second payment error = %v", err)
		}
		if f.Status != FeeStatusPaid {
			t.Errorf("status after second payment = %q, want %q", f.Status, FeeStatusPaid)
		}
		if len(f.PaymentHistory) != 2 {
			t.Errorf("history length = %d, want 2", len(f.PaymentHistory))
		}
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		f := newTestFee(5000, due)
		err := f.AddPayment(FeePayment{Amount: 5001, PaymentMethod: "upi"}, now, receiptGen)
		if !errors.Is(err, ErrOverpayment) {
			t.Errorf("error = %v, want ErrOverpayment", err)
		}
		if f.PaidAmount != 0 || len(f.PaymentHistory) != 0 {
			t.Error("rejected payment mutated the fee")
		}
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		f := newTestFee(5000, due)
		if err := f.AddPayment(FeePayment{Amount: 0, PaymentMethod: "cash"}, now, receiptGen); err == nil {
			t.Error("expected error for zero amount")
		}
	})
}

func TestFeeDaysOverdue(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	f := newTestFee(5000, due)
	f.Recalculate(due.AddDate(0, 0, 7))

	if got := f.DaysOverdue(due.AddDate(0, 0, 7)); got != 7 {
		t.Errorf("DaysOverdue() = %d, want 7", got)
	}

	paid := newTestFee(5000, due)
	if err := paid.AddPayment(FeePayment{Amount: 5000, PaymentMethod: "cash"}, due, func() string { return "R" }); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	if got := paid.DaysOverdue(due.AddDate(0, 0, 7)); got != 0 {
		t.Errorf("DaysOverdue() on paid fee = %d, want 0", got)
	}
}

func TestFeePaymentPercentage(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	f := newTestFee(4000, due)
	f.PaidAmount = 1000
	f.Recalculate(due)
	if got := f.PaymentPercentage(); got != 25 {
		t.Errorf("PaymentPercentage() = %d, want 25", got)
	}

	zero := &Fee{}
	if got := zero.PaymentPercentage(); got != 100 {
		t.Errorf("PaymentPercentage() on zero fee = %d, want 100", got)
	}
}
