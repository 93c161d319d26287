package account

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/dberr"
	"github.com/wichananm65/beverage-shop/internal/logger"
)

// CallbackFailed is where a failed code exchange lands.
const CallbackFailed = "/admin/login?msg=auth_callback_failed"

type Handler struct {
	service      *Service
	secureCookie bool
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirmPassword"`
}

func NewHandler(service *Service, secureCookie bool) *Handler {
	return &Handler{service: service, secureCookie: secureCookie}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/auth/sign-in", h.signIn)
	app.Post("/api/v1/auth/forgot", h.forgot)
	app.Get("/auth/callback", h.callback)
}

// RegisterProtectedRoutes mounts the signed-in routes on a router that
// already runs Service.Middleware; paths are relative to /api/v1.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/auth/sign-out", h.signOut)
	r.Get("/auth/me", h.me)
	r.Put("/auth/password", h.updatePassword)
	r.Post("/account/password", h.changePassword)
	r.Put("/account/profile", h.updateProfile)
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, s Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, err)
	}

	session, err := h.service.SignIn(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		logger.WithCtx(c.UserContext()).Error("sign in", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Có lỗi xảy ra. Vui lòng thử lại."})
	}

	h.setSessionCookie(c, session)
	return c.JSON(session)
}

func (h *Handler) signOut(c *fiber.Ctx) error {
	claims, err := ClaimsFromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.service.SignOut(c.UserContext(), claims); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	c.ClearCookie(SessionCookie)
	return c.JSON(fiber.Map{"message": "Đã đăng xuất"})
}

func (h *Handler) me(c *fiber.Ctx) error {
	id, err := UserIDFromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	p, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(p)
}

func isFormError(err error) bool {
	for _, e := range []error{
		ErrOldPasswordRequired, ErrNewPasswordTooShort, ErrPasswordTooShort,
		ErrPasswordMismatch, ErrPasswordUnchanged, ErrWrongOldPassword,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func (h *Handler) updatePassword(c *fiber.Ctx) error {
	id, err := UserIDFromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	payload := new(passwordRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, err)
	}
	if err := h.service.UpdatePassword(c.UserContext(), id, payload.Password, payload.Confirm); err != nil {
		if isFormError(err) {
			return badRequest(c, err)
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật mật khẩu. Bạn có thể tiếp tục sử dụng tài khoản."})
}

func (h *Handler) changePassword(c *fiber.Ctx) error {
	id, err := UserIDFromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	payload := new(PasswordChange)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, err)
	}
	if err := h.service.ChangePassword(c.UserContext(), id, *payload); err != nil {
		if isFormError(err) {
			return badRequest(c, err)
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã đổi mật khẩu."})
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	id, err := UserIDFromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	payload := new(ProfileUpdate)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, err)
	}
	p, err := h.service.UpdateProfile(c.UserContext(), id, *payload)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã lưu thông tin cá nhân.", "user": p})
}

func (h *Handler) forgot(c *fiber.Ctx) error {
	payload := new(forgotRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, err)
	}
	if err := h.service.Forgot(c.UserContext(), payload.Email); err != nil {
		logger.WithCtx(c.UserContext()).Error("forgot password", "err", err)
	}
	return c.JSON(fiber.Map{"message": "Nếu email hợp lệ, hệ thống đã gửi link đặt lại mật khẩu. Vui lòng kiểm tra hộp thư."})
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n\t") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func (h *Handler) callback(c *fiber.Ctx) error {
	session, err := h.service.Exchange(c.UserContext(), c.Query("code"))
	if err != nil {
		logger.WithCtx(c.UserContext()).Warn("auth callback", "err", err)
		return c.Redirect(CallbackFailed, fiber.StatusSeeOther)
	}
	h.setSessionCookie(c, session)
	return c.Redirect(safeNext(c.Query("next")), fiber.StatusSeeOther)
}
