package banner

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/logger"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/banners", h.getBanners)
}

func (h *Handler) getBanners(c *fiber.Ctx) error {
	limit := DefaultLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	items, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		// the storefront renders its built-in slides when the list is empty
		logger.WithCtx(c.UserContext()).Warn("list banners", "err", err)
		return c.JSON([]Banner{})
	}
	return c.JSON(items)
}
