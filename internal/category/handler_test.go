package category

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func ptrString(s string) *string { return &s }

func newTestApp(seed []Category) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	h := NewHandler(NewService(repo))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app, repo
}

func TestGetCategories_OrderedByName(t *testing.T) {
	app, _ := newTestApp([]Category{
		{ID: "2", Name: "Nước ngọt", Slug: "nuoc-ngot"},
		{ID: "1", Name: "Bia", Slug: "bia"},
	})

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var got []Category
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "bia" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSaveCategory_UpsertsOnSlug(t *testing.T) {
	app, repo := newTestApp([]Category{{ID: "1", Name: "Bia", Slug: "bia"}})

	body := `{"name":"  Bia hơi ","slug":"bia","abbr":" bi "}`
	req := httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 200 got %d: %s", res.StatusCode, b)
	}

	items, _ := repo.List(req.Context())
	if len(items) != 1 {
		t.Fatalf("expected upsert to keep one row, got %d", len(items))
	}
	if items[0].ID != "1" || items[0].Name != "Bia hơi" || items[0].Abbr == nil || *items[0].Abbr != "BI" {
		t.Fatalf("unexpected row: %+v", items[0])
	}
}

func TestSaveCategory_MissingNameOrSlug(t *testing.T) {
	app, _ := newTestApp(nil)

	req := httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(`{"name":"Bia","slug":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Thiếu name/slug") {
		t.Fatalf("unexpected body: %s", b)
	}
}

func TestDeleteCategory(t *testing.T) {
	app, _ := newTestApp([]Category{{ID: "1", Name: "Bia", Slug: "bia"}})

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/categories/1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	res2, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/categories/1", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res2.StatusCode)
	}
}

func TestSuggest(t *testing.T) {
	app, _ := newTestApp(nil)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/suggest?name=N%C6%B0%E1%BB%9Bc+Ng%E1%BB%8Dt", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var got map[string]string
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["slug"] != "nuoc-ngot" || got["abbr"] != "NU" {
		t.Fatalf("unexpected suggestion: %+v", got)
	}
}

func TestNormalize_EmptyAbbrBecomesNull(t *testing.T) {
	c, err := Normalize(Category{Name: "Bia", Slug: "bia", Abbr: ptrString("   ")})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if c.Abbr != nil {
		t.Fatalf("expected nil abbr, got %q", *c.Abbr)
	}
}
