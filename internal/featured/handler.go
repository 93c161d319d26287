package featured

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/dberr"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/home", h.getHome)
	app.Get("/api/v1/featured", h.getFeatured)
}

func limitParam(c *fiber.Ctx) int {
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			return v
		}
	}
	return DefaultLimit
}

func (h *Handler) getHome(c *fiber.Ctx) error {
	home, err := h.service.Home(c.UserContext(), limitParam(c))
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(home)
}

func (h *Handler) getFeatured(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), limitParam(c))
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(items)
}
