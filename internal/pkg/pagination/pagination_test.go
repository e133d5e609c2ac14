package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paramsFor(t *testing.T, query string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	req := httptest.NewRequest("GET", "/?"+query, nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return got
}

func TestGetParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, DefaultLimit, 0},
		{"explicit page and limit", "page=3&limit=10", 3, 10, 20},
		{"negative page falls back", "page=-1", 1, DefaultLimit, 0},
		{"zero limit falls back", "limit=0", 1, DefaultLimit, 0},
		{"limit is capped", "limit=5000", 1, MaxLimit, 0},
		{"garbage input falls back", "page=abc&limit=xyz", 1, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(t, tt.query)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("GetParams() = %+v, want page=%d limit=%d offset=%d",
					p, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestNewResponse(t *testing.T) {
	items := []string{"a", "b", "c"}

	resp := NewResponse(items, &Params{Page: 2, Limit: 10}, 25)
	if resp.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", resp.TotalPages)
	}
	if resp.Page != 2 || resp.Limit != 10 || resp.Total != 25 {
		t.Errorf("unexpected response %+v", resp)
	}

	exact := NewResponse(items, &Params{Page: 1, Limit: 5}, 10)
	if exact.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2 for an exact multiple", exact.TotalPages)
	}

	empty := NewResponse([]string{}, &Params{Page: 1, Limit: 20}, 0)
	if empty.TotalPages != 0 {
		t.Errorf("total pages = %d, want 0 for an empty set", empty.TotalPages)
	}
}
