package idgen

import (
	"regexp"
	"testing"
	"time"
)

var now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func TestIdentifierFormats(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		pattern string
	}{
		{"student", StudentID(now), `^STU2026\d{4}$`},
		{"employee", EmployeeID(), `^EMP\d{4}$`},
		{"complaint", ComplaintID(now), `^CMP202608\d{4}$`},
		{"leave", LeaveID(now), `^LV202608\d{4}$`},
		{"receipt", ReceiptNumber(now), `^RCP202608\d{4}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			if !re.MatchString(tt.id) {
				t.Errorf("id %q does not match %q", tt.id, tt.pattern)
			}
		})
	}
}

func TestSingleDigitMonthIsPadded(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if !regexp.MustCompile(`^CMP202601\d{4}$`).MatchString(ComplaintID(jan)) {
		t.Errorf("ComplaintID(%v) = %q, want zero-padded month", jan, ComplaintID(jan))
	}
}
