package handlers

import (
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/config"
	"hostelhub/internal/core/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// newComplaintTestApp wires the complaint endpoints against an
// in-memory database. Requests authenticate through the X-User-ID and
// X-User-Role headers instead of a real token.
func newComplaintTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	complaintRepo := repositories.NewComplaintRepository(db)
	userRepo := repositories.NewUserRepository(db)
	mailer := services.NewMailerService(&config.Config{})
	svc := services.NewComplaintService(complaintRepo, userRepo, mailer)
	handler := NewComplaintHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id, err := strconv.ParseUint(c.Get("X-User-ID"), 10, 32); err == nil {
			c.Locals("userID", uint(id))
		}
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	})
	app.Patch("/complaints/:id/status", handler.UpdateComplaintStatus)
	app.Delete("/complaints/:id", handler.DeleteComplaint)

	return app, db
}

var seedComplaintSeq uint64

func seedComplaint(t *testing.T, db *gorm.DB, reporterID uint, status string) *models.Complaint {
	t.Helper()
	cp := &models.Complaint{
		ComplaintID: fmt.Sprintf("CMP20260800%02d", atomic.AddUint64(&seedComplaintSeq, 1)),
		Title:       "Leaking tap",
		Description: "Bathroom tap drips all night",
		Category:    "plumbing",
		Priority:    models.PriorityMedium,
		Status:      status,
		ReportedBy:  reporterID,
	}
	if err := db.Create(cp).Error; err != nil {
		t.Fatalf("seed complaint: %v", err)
	}
	return cp
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     email,
		Password:  "hashed",
		Role:      "student",
		Phone:     "9999999999",
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return u
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, userID uint, role string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", strconv.FormatUint(uint64(userID), 10))
	req.Header.Set("X-User-Role", role)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp.StatusCode
}

// Lifecycle violations are client errors, not conflicts: a complaint
// that already reached a final state answers 400.
func TestComplaintInvalidStateIsBadRequest(t *testing.T) {
	app, db := newComplaintTestApp(t)
	student := seedStudent(t, db, "asha@hostel.test")

	t.Run("status change on resolved complaint", func(t *testing.T) {
		cp := seedComplaint(t, db, student.ID, models.ComplaintStatusResolved)
		code := doJSON(t, app, "PATCH", fmt.Sprintf("/complaints/%d/status", cp.ID),
			`{"status":"in_progress"}`, 99, "warden")
		if code != fiber.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})

	t.Run("student withdrawing a non-pending complaint", func(t *testing.T) {
		cp := seedComplaint(t, db, student.ID, models.ComplaintStatusInProgress)
		code := doJSON(t, app, "DELETE", fmt.Sprintf("/complaints/%d", cp.ID),
			"", student.ID, "student")
		if code != fiber.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})
}

func TestComplaintLifecycleHappyPaths(t *testing.T) {
	app, db := newComplaintTestApp(t)
	student := seedStudent(t, db, "ravi@hostel.test")

	t.Run("student withdraws own pending complaint", func(t *testing.T) {
		cp := seedComplaint(t, db, student.ID, models.ComplaintStatusPending)
		code := doJSON(t, app, "DELETE", fmt.Sprintf("/complaints/%d", cp.ID),
			"", student.ID, "student")
		if code != fiber.StatusOK {
			t.Errorf("status = %d, want 200", code)
		}
	})

	t.Run("staff moves pending complaint forward", func(t *testing.T) {
		cp := seedComplaint(t, db, student.ID, models.ComplaintStatusPending)
		code := doJSON(t, app, "PATCH", fmt.Sprintf("/complaints/%d/status", cp.ID),
			`{"status":"in_progress","comment":"Plumber booked"}`, 99, "warden")
		if code != fiber.StatusOK {
			t.Errorf("status = %d, want 200", code)
		}

		var got models.Complaint
		if err := db.First(&got, cp.ID).Error; err != nil {
			t.Fatalf("reload complaint: %v", err)
		}
		if got.Status != models.ComplaintStatusInProgress {
			t.Errorf("status = %s, want in_progress", got.Status)
		}
	})
}
