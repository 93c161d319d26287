package brand

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/dberr"
	"github.com/wichananm65/beverage-shop/internal/metrics"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/brands", h.getBrands)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/brands", h.getBrands)
	r.Post("/brands", h.saveBrand)
	r.Delete("/brands/:id", h.deleteBrand)
}

func (h *Handler) getBrands(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) saveBrand(c *fiber.Ctx) error {
	payload := new(Brand)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	saved, err := h.service.Save(c.UserContext(), *payload)
	metrics.RecordCatalogOperation("brand_save", err == nil)
	if err != nil {
		if errors.Is(err, ErrMissingNameSlug) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã lưu hãng", "brand": saved})
}

func (h *Handler) deleteBrand(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"))
	metrics.RecordCatalogOperation("brand_delete", err == nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "brand not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã xoá"})
}
