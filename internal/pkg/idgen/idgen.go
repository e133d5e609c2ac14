// Package idgen generates the human-readable business identifiers
// printed on receipts, complaint slips and ID cards.
package idgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// random4 returns a zero-padded 4 digit suffix derived from a UUID.
func random4() string {
	id := uuid.New()
	n := binary.BigEndian.Uint32(id[:4]) % 10000
	return fmt.Sprintf("%04d", n)
}

// StudentID generates an id like STU20260412
func StudentID(now time.Time) string {
	return fmt.Sprintf("STU%d%s", now.Year(), random4())
}

// EmployeeID generates an id like EMP0412
func EmployeeID() string {
	return "EMP" + random4()
}

// ComplaintID generates an id like CMP2026080412
func ComplaintID(now time.Time) string {
	return fmt.Sprintf("CMP%d%02d%s", now.Year(), int(now.Month()), random4())
}

// LeaveID generates an id like LV2026080412
func LeaveID(now time.Time) string {
	return fmt.Sprintf("LV%d%02d%s", now.Year(), int(now.Month()), random4())
}

// ReceiptNumber generates a receipt number like RCP2026080412
func ReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCP%d%02d%s", now.Year(), int(now.Month()), random4())
}
