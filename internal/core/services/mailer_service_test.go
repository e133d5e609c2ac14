package services

import (
	"testing"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/config"
)

// Without SMTP settings the mailer must stay usable and drop every
// message instead of dialing.
func TestMailerDisabledDropsMessages(t *testing.T) {
	cfg := &config.Config{}
	if cfg.MailEnabled() {
		t.Fatal("mail should be disabled without an SMTP host")
	}

	mailer := NewMailerService(cfg)
	if mailer.dialer != nil {
		t.Fatal("disabled mailer must not hold a dialer")
	}

	user := &models.User{FirstName: "Asha", Email: "asha@hostel.test"}
	cp := &models.Complaint{
		ComplaintID: "CMP2026080001",
		Title:       "Leaking tap",
		Status:      models.ComplaintStatusResolved,
	}
	cp.Resolution.Description = "Washer replaced"

	// None of these may dial or panic
	mailer.SendWelcome(user)
	mailer.SendComplaintUpdate(user, cp)
	mailer.SendAnnouncement(user, &models.Announcement{Title: "Water cut", Content: "Tomorrow 9-11"})
}
