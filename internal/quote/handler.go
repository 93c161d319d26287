package quote

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/dberr"
	"github.com/wichananm65/beverage-shop/internal/logger"
	"github.com/wichananm65/beverage-shop/internal/metrics"
)

// Handler delegates quote request operations to the service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/quote-requests", h.submit)
}

// RegisterAdminRoutes mounts the inbox on an admin router.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/quote-requests", h.list)
	r.Put("/quote-requests/:id/status", h.updateStatus)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(Form)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	req, err := h.service.Submit(c.UserContext(), *payload)
	metrics.RecordCatalogOperation("quote_submit", err == nil)
	if err != nil {
		if errors.Is(err, ErrMissingContact) || errors.Is(err, ErrInvalidPhone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		logger.WithCtx(c.UserContext()).Error("submit quote request", "err", err)
		return dberr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Đã gửi yêu cầu. Chúng tôi sẽ liên hệ lại sớm.",
		"id":      req.ID,
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	state := Codec.DecodeQuery(string(c.Request().URI().QueryString()))
	page, err := h.service.List(c.UserContext(), state)
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(page)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), payload.Status)
	metrics.RecordCatalogOperation("quote_status", err == nil)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "quote request not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật trạng thái"})
}
