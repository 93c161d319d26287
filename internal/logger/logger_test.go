package logger

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func TestMiddlewareLogsRequestWithID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(Middleware(New(&buf, true)))
	app.Get("/ping", func(c *fiber.Ctx) error {
		WithCtx(c.UserContext()).Info("inside handler")
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "abc123")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	out := buf.String()
	if strings.Count(out, `"request_id":"abc123"`) != 2 {
		t.Fatalf("both lines should carry the request id, got:\n%s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Fatalf("request line should carry the status, got:\n%s", out)
	}
}
