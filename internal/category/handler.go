package category

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/dberr"
	"github.com/wichananm65/beverage-shop/internal/metrics"
	"github.com/wichananm65/beverage-shop/internal/slug"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.getCategories)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/categories", h.getCategories)
	r.Post("/categories", h.saveCategory)
	r.Delete("/categories/:id", h.deleteCategory)
	r.Get("/suggest", h.suggest)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) saveCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	saved, err := h.service.Save(c.UserContext(), *payload)
	metrics.RecordCatalogOperation("category_save", err == nil)
	if err != nil {
		if errors.Is(err, ErrMissingNameSlug) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã lưu danh mục", "category": saved})
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"))
	metrics.RecordCatalogOperation("category_delete", err == nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã xoá"})
}

// suggest derives the slug and abbreviation the editor pre-fills for a name.
func (h *Handler) suggest(c *fiber.Ctx) error {
	name := c.Query("name")
	return c.JSON(fiber.Map{"slug": slug.Slugify(name), "abbr": slug.Abbreviate(name)})
}
