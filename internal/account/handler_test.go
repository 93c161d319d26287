package account

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// makeAppWithUserHandler injects a jwt.Token into locals when the X-User-ID
// header is provided, in place of the full jwtware middleware.
func makeAppWithUserHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": v}})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(api)
	return app
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestMe_RequiresUser(t *testing.T) {
	s, _, _, _ := newTestService(t)
	app := makeAppWithUserHandler(NewHandler(s, false))

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/auth/me", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("X-User-ID", "u2")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != 200 || !strings.Contains(string(b), "staff@example.com") {
		t.Fatalf("unexpected response %d: %s", res.StatusCode, b)
	}
	if strings.Contains(string(b), "$2a$") {
		t.Fatalf("password hash leaked: %s", b)
	}
}

func TestSignIn_SetsCookie(t *testing.T) {
	s, _, _, _ := newTestService(t)
	app := makeAppWithUserHandler(NewHandler(s, false))

	res, err := app.Test(jsonRequest("POST", "/api/v1/auth/sign-in", `{"email":"admin@example.com","password":"secret1"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var session Session
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token")
	}
	if !strings.Contains(res.Header.Get("Set-Cookie"), SessionCookie+"=") {
		t.Fatalf("expected session cookie, got %q", res.Header.Get("Set-Cookie"))
	}

	res, _ = app.Test(jsonRequest("POST", "/api/v1/auth/sign-in", `{"email":"admin@example.com","password":"nope"}`))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.StatusCode)
	}
}

func TestChangePassword_Messages(t *testing.T) {
	s, _, _, _ := newTestService(t)
	app := makeAppWithUserHandler(NewHandler(s, false))

	req := jsonRequest("POST", "/api/v1/account/password", `{"oldPassword":"wrong1","newPassword":"abcdef","confirmPassword":"abcdef"}`)
	req.Header.Set("X-User-ID", "u2")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusBadRequest || !strings.Contains(string(b), "Mật khẩu cũ không đúng.") {
		t.Fatalf("unexpected response %d: %s", res.StatusCode, b)
	}

	req = jsonRequest("POST", "/api/v1/account/password", `{"oldPassword":"secret2","newPassword":"abcdef","confirmPassword":"abcdef"}`)
	req.Header.Set("X-User-ID", "u2")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if res.StatusCode != 200 || !strings.Contains(string(b), "Đã đổi mật khẩu.") {
		t.Fatalf("unexpected response %d: %s", res.StatusCode, b)
	}
}

func TestUpdateProfile(t *testing.T) {
	s, _, _, _ := newTestService(t)
	app := makeAppWithUserHandler(NewHandler(s, false))

	req := jsonRequest("PUT", "/api/v1/account/profile", `{"fullName":" Lan ","phone":"","address":"Hà Nội"}`)
	req.Header.Set("X-User-ID", "u2")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != 200 || !strings.Contains(string(b), "Đã lưu thông tin cá nhân.") || !strings.Contains(string(b), `"phone":null`) {
		t.Fatalf("unexpected response %d: %s", res.StatusCode, b)
	}
}

func TestCallback_Redirects(t *testing.T) {
	s, _, tokens, _ := newTestService(t)
	app := makeAppWithUserHandler(NewHandler(s, false))

	res, err := app.Test(httptest.NewRequest("GET", "/auth/callback?code=missing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusSeeOther || res.Header.Get("Location") != CallbackFailed {
		t.Fatalf("unexpected redirect %d %q", res.StatusCode, res.Header.Get("Location"))
	}

	if err := tokens.SaveCode(t.Context(), "good", "u2", CodeTTL); err != nil {
		t.Fatalf("SaveCode: %v", err)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/auth/callback?code=good&next=/account/update-password", nil))
	if res.Header.Get("Location") != "/account/update-password" {
		t.Fatalf("unexpected location %q", res.Header.Get("Location"))
	}

	if err := tokens.SaveCode(t.Context(), "evil", "u2", CodeTTL); err != nil {
		t.Fatalf("SaveCode: %v", err)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/auth/callback?code=evil&next=//evil.example", nil))
	if res.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %q", res.Header.Get("Location"))
	}

	for i, next := range []string{`/\evil.example`, `/\/evil.example`} {
		code := "slash" + strconv.Itoa(i)
		if err := tokens.SaveCode(t.Context(), code, "u2", CodeTTL); err != nil {
			t.Fatalf("SaveCode: %v", err)
		}
		res, _ = app.Test(httptest.NewRequest("GET", "/auth/callback?code="+code+"&next="+url.QueryEscape(next), nil))
		if res.Header.Get("Location") != "/" {
			t.Fatalf("next=%q: expected redirect to /, got %q", next, res.Header.Get("Location"))
		}
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                     "/",
		"/admin/products":      "/admin/products",
		"/account?tab=1":       "/account?tab=1",
		"https://evil.example": "/",
		"//evil.example":       "/",
		`/\evil.example`:       "/",
		`/\/evil.example`:      "/",
		"/\tevil":              "/",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Fatalf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMiddleware_RevokedTokenAndAdminGuard(t *testing.T) {
	s, _, _, _ := newTestService(t)
	h := NewHandler(s, false)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	api := app.Group("/api/v1", s.Middleware())
	h.RegisterProtectedRoutes(api)
	api.Group("/admin", s.RequireAdmin()).Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	staff, err := s.SignIn(t.Context(), "staff@example.com", "secret2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	admin, err := s.SignIn(t.Context(), "admin@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	get := func(path, token string) int {
		req := httptest.NewRequest("GET", path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return res.StatusCode
	}

	if code := get("/api/v1/auth/me", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code := get("/api/v1/admin/ping", staff.Token); code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", code)
	}
	if code := get("/api/v1/admin/ping", admin.Token); code != 200 {
		t.Fatalf("expected 200 for admin, got %d", code)
	}

	req := httptest.NewRequest("POST", "/api/v1/auth/sign-out", nil)
	req.Header.Set("Authorization", "Bearer "+admin.Token)
	res, err := app.Test(req)
	if err != nil || res.StatusCode != 200 {
		t.Fatalf("sign-out failed: %v %v", err, res)
	}
	if code := get("/api/v1/auth/me", admin.Token); code != fiber.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", code)
	}
}
