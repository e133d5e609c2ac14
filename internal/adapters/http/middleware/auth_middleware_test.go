package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/config"
	"hostelhub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testSecret = "auth-middleware-test-secret"

// userStore serves fixed users out of a map. Only GetByID is needed
// by the middleware; the embedded interface covers the rest.
type userStore struct {
	repositories.UserRepository
	users map[uint]*models.User
}

func (s *userStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func protectedApp(store repositories.UserRepository) *fiber.App {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, store), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthMiddlewareAccountState(t *testing.T) {
	store := &userStore{users: map[uint]*models.User{
		1: {ID: 1, Email: "active@hostel.test", Role: "student", IsActive: true},
		2: {ID: 2, Email: "gone@hostel.test", Role: "student", IsActive: false},
	}}
	app := protectedApp(store)

	tests := []struct {
		name       string
		userID     uint
		wantStatus int
	}{
		{"active user passes", 1, fiber.StatusOK},
		{"deactivated user is rejected", 2, fiber.StatusUnauthorized},
		{"deleted user is rejected", 99, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.GenerateAccessToken(tt.userID, "x@hostel.test", "X", "student", testSecret, 5)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}

			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareTokenChecks(t *testing.T) {
	store := &userStore{users: map[uint]*models.User{}}
	app := protectedApp(store)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})
}
