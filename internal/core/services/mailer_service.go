package services

import (
	"fmt"
	"log"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/config"

	"gopkg.in/gomail.v2"
)

// MailerService sends transactional email over SMTP. Every send is
// best effort: failures are logged and never abort the calling
// operation.
type MailerService struct {
	cfg    *config.Config
	dialer *gomail.Dialer
}

// NewMailerService creates a new mailer service. When SMTP is not
// configured the service stays up but drops every message.
func NewMailerService(cfg *config.Config) *MailerService {
	s := &MailerService{cfg: cfg}
	if cfg.MailEnabled() {
		s.dialer = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
		log.Printf("✅ Mailer configured [%s:%d]", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Println("⚠️ SMTP not configured, outgoing mail disabled")
	}
	return s
}

// send delivers one message, logging instead of returning failures
func (s *MailerService) send(to, subject, body string) {
	if s.dialer == nil {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("⚠️ Mail send failed [to=%s subject=%s]: %v", to, subject, err)
		return
	}
	log.Printf("✅ Mail sent [to=%s subject=%s]", to, subject)
}

// SendWelcome greets a newly registered student
func (s *MailerService) SendWelcome(user *models.User) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your hostel account has been created. You can now log in and apply for a room, raise complaints and track your fees.</p>",
		user.FirstName,
	)
	s.send(user.Email, "Welcome to HostelHub", body)
}

// SendPasswordReset delivers the raw reset token
func (s *MailerService) SendPasswordReset(user *models.User, token string) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Use this token to reset your password within the next hour:</p><p><b>%s</b></p><p>If you did not request a reset, ignore this mail.</p>",
		user.FirstName, token,
	)
	s.send(user.Email, "Password reset", body)
}

// SendFeeReminder nudges a student about an upcoming or overdue fee
func (s *MailerService) SendFeeReminder(user *models.User, fee *models.Fee) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s fee of %.2f for %02d/%d is due on %s. Outstanding balance: %.2f.</p>",
		user.FirstName, fee.FeeType, fee.FinalAmount, fee.Month, fee.Year,
		fee.DueDate.Format("02 Jan 2006"), fee.BalanceAmount,
	)
	s.send(user.Email, "Fee payment reminder", body)
}

// SendPaymentReceipt confirms a recorded payment
func (s *MailerService) SendPaymentReceipt(user *models.User, fee *models.Fee, amount float64) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your payment of %.2f towards the %s fee for %02d/%d. Remaining balance: %.2f.</p>",
		user.FirstName, amount, fee.FeeType, fee.Month, fee.Year, fee.BalanceAmount,
	)
	if fee.ReceiptNumber != "" {
		body += fmt.Sprintf("<p>Receipt number: <b>%s</b></p>", fee.ReceiptNumber)
	}
	s.send(user.Email, "Payment received", body)
}

// SendComplaintUpdate tells the reporter their complaint moved to a
// new state
func (s *MailerService) SendComplaintUpdate(user *models.User, cp *models.Complaint) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your complaint %s (%s) is now <b>%s</b>.</p>",
		user.FirstName, cp.ComplaintID, cp.Title, cp.Status,
	)
	if cp.AssignedTo != nil && cp.Assignee != nil {
		body += fmt.Sprintf("<p>Handled by: %s</p>", cp.Assignee.FullName())
	}
	if cp.Status == models.ComplaintStatusResolved && cp.Resolution.Description != "" {
		body += fmt.Sprintf("<p>Resolution: %s</p>", cp.Resolution.Description)
	}
	s.send(user.Email, "Complaint update: "+cp.Title, body)
}

// SendLeaveDecision notifies the student about an approval or
// rejection
func (s *MailerService) SendLeaveDecision(user *models.User, leave *models.Leave) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your leave request %s (%s to %s) has been <b>%s</b>.</p>",
		user.FirstName, leave.LeaveID,
		leave.StartDate.Format("02 Jan 2006"), leave.EndDate.Format("02 Jan 2006"),
		leave.Status,
	)
	if leave.Status == models.LeaveStatusRejected && leave.RejectionReason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", leave.RejectionReason)
	}
	s.send(user.Email, "Leave request update", body)
}

// SendAnnouncement broadcasts an announcement to one recipient
func (s *MailerService) SendAnnouncement(user *models.User, a *models.Announcement) {
	body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", a.Title, a.Content)
	s.send(user.Email, "Announcement: "+a.Title, body)
}
