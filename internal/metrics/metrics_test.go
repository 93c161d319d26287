package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/v1/products/:slug", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/v1/products/:slug", "200"))
	for _, slug := range []string{"a", "b"} {
		res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/"+slug, nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if res.StatusCode != 200 {
			t.Fatalf("expected 200, got %d", res.StatusCode)
		}
	}
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/v1/products/:slug", "200"))
	if after-before != 2 {
		t.Fatalf("expected 2 counted requests, got %v", after-before)
	}

	res, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "beverage_shop_http_requests_total") {
		t.Fatalf("scrape output missing request counter")
	}
}

func TestRecordCatalogOperation(t *testing.T) {
	before := testutil.ToFloat64(CatalogOperations.WithLabelValues("product_save", "error"))
	RecordCatalogOperation("product_save", false)
	if got := testutil.ToFloat64(CatalogOperations.WithLabelValues("product_save", "error")); got != before+1 {
		t.Fatalf("expected counter to increase by one, got %v -> %v", before, got)
	}
}
