package brand

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func ptrString(s string) *string { return &s }

func TestBrandRoutes(t *testing.T) {
	repo := NewInMemoryRepository([]Brand{{ID: "b1", Name: "Sabeco", Slug: "sabeco", Abbr: ptrString("SA")}})
	h := NewHandler(NewService(repo))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/brands", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != 200 || !strings.Contains(string(b), "sabeco") {
		t.Fatalf("unexpected response %d: %s", res.StatusCode, b)
	}

	req := httptest.NewRequest("POST", "/api/v1/admin/brands", strings.NewReader(`{"name":"Heineken","slug":"heineken","abbr":"heineken"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ = io.ReadAll(res.Body)
	if res.StatusCode != 200 || !strings.Contains(string(b), "Đã lưu hãng") {
		t.Fatalf("unexpected response %d: %s", res.StatusCode, b)
	}
	saved, err := repo.GetBySlug(req.Context(), "heineken")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if saved.Abbr == nil || *saved.Abbr != "HE" {
		t.Fatalf("expected abbr HE, got %+v", saved.Abbr)
	}
}

func TestSaveBrand_MissingName(t *testing.T) {
	_, err := NewService(NewInMemoryRepository(nil)).Save(t.Context(), Brand{Slug: "x"})
	if err != ErrMissingNameSlug {
		t.Fatalf("expected ErrMissingNameSlug got %v", err)
	}
}
