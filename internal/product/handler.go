package product

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/category"
	"github.com/wichananm65/beverage-shop/internal/dberr"
	"github.com/wichananm65/beverage-shop/internal/logger"
	"github.com/wichananm65/beverage-shop/internal/metrics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getCatalog)
	app.Get("/api/v1/products/:slug", h.getDetail)
	app.Get("/api/v1/categories/:slug/products", h.getCategory)
}

// RegisterAdminRoutes mounts the back-office product routes on an admin router.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/products", h.adminList)
	r.Get("/products/export", h.export)
	r.Get("/products/:id", h.adminGet)
	r.Post("/products", h.createProduct)
	r.Put("/products/:id", h.updateProduct)
	r.Delete("/products/:id", h.deleteProduct)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": msg})
}

func (h *Handler) getCatalog(c *fiber.Ctx) error {
	state := CatalogCodec.DecodeQuery(string(c.Request().URI().QueryString()))
	page, err := h.service.Catalog(c.UserContext(), state)
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) getCategory(c *fiber.Ctx) error {
	state := CategoryCodec.DecodeQuery(string(c.Request().URI().QueryString()))
	page, err := h.service.Category(c.UserContext(), c.Params("slug"), state)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return notFound(c, "Không tìm thấy danh mục.")
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) getDetail(c *fiber.Ctx) error {
	d, err := h.service.Detail(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(c, "Không tìm thấy sản phẩm")
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	state := AdminCodec.DecodeQuery(string(c.Request().URI().QueryString()))
	page, err := h.service.AdminList(c.UserContext(), state)
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(page)
}

func (h *Handler) adminGet(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(c, "Không tìm thấy sản phẩm")
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) save(c *fiber.Ctx, id string) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	op := "product_update"
	if id == "" {
		op = "product_create"
	}
	p, err := h.service.Save(c.UserContext(), id, in)
	metrics.RecordCatalogOperation(op, err == nil)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingNameSlug), errors.Is(err, ErrActiveRequiresCode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return notFound(c, "Không tìm thấy sản phẩm")
		}
		logger.WithCtx(c.UserContext()).Error("save product", "op", op, "err", err)
		return dberr.Respond(c, err)
	}

	if id == "" {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã tạo sản phẩm", "product": p})
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật sản phẩm", "product": p})
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	return h.save(c, "")
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"))
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"))
	metrics.RecordCatalogOperation("product_delete", err == nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(c, "Không tìm thấy sản phẩm")
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã xoá"})
}

func (h *Handler) export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.Export(c.UserContext(), &buf); err != nil {
		return dberr.Respond(c, err)
	}
	c.Attachment("products.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
