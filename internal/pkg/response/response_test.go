package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func perform(t *testing.T, h fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestSuccessEnvelope(t *testing.T) {
	code, body := perform(t, func(c *fiber.Ctx) error {
		return Success(c, "done", fiber.Map{"count": 3})
	})

	if code != fiber.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["message"] != "done" {
		t.Errorf("message = %v, want done", body["message"])
	}
	if _, ok := body["error"]; ok {
		t.Error("success reply must not carry an error field")
	}
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		handler fiber.Handler
		want    int
	}{
		{"bad request", func(c *fiber.Ctx) error { return BadRequest(c, "nope") }, 400},
		{"unauthorized", func(c *fiber.Ctx) error { return Unauthorized(c, "nope") }, 401},
		{"forbidden", func(c *fiber.Ctx) error { return Forbidden(c, "nope") }, 403},
		{"not found", func(c *fiber.Ctx) error { return NotFound(c, "nope") }, 404},
		{"conflict", func(c *fiber.Ctx) error { return Conflict(c, "nope") }, 409},
		{"internal", func(c *fiber.Ctx) error { return InternalServerError(c, "nope") }, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := perform(t, tt.handler)
			if code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if body["error"] != "nope" {
				t.Errorf("error = %v, want nope", body["error"])
			}
			if _, ok := body["data"]; ok {
				t.Error("failure reply must not carry a data field")
			}
		})
	}
}
