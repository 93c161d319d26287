package productimage

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/beverage-shop/internal/dberr"
	"github.com/wichananm65/beverage-shop/internal/metrics"
	"github.com/wichananm65/beverage-shop/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts image management under an admin router.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/products/:id/images", h.listImages)
	r.Post("/products/:id/images", h.uploadImages)
	r.Put("/products/:id/images/:imageId/primary", h.setPrimary)
	r.Delete("/images/:imageId", h.deleteImage)
}

func (h *Handler) listImages(c *fiber.Ctx) error {
	images, err := h.service.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return dberr.Respond(c, err)
	}
	return c.JSON(images)
}

func (h *Handler) uploadImages(c *fiber.Ctx) error {
	productID := c.Params("id")
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	files := form.File["file"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}

	uploaded := make([]Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		img, err := h.service.Upload(c.UserContext(), productID, fh.Filename, fh.Header.Get("Content-Type"), f)
		f.Close()
		metrics.RecordCatalogOperation("image_upload", err == nil)
		if err != nil {
			if errors.Is(err, storage.ErrExists) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "The resource already exists", "images": uploaded})
			}
			return c.Status(dberr.Status(err)).JSON(fiber.Map{"message": dberr.Translate(err), "images": uploaded})
		}
		uploaded = append(uploaded, img)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Đã upload ảnh", "images": uploaded})
}

func (h *Handler) setPrimary(c *fiber.Ctx) error {
	err := h.service.SetPrimary(c.UserContext(), c.Params("id"), c.Params("imageId"))
	metrics.RecordCatalogOperation("image_set_primary", err == nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã đặt ảnh đại diện"})
}

func (h *Handler) deleteImage(c *fiber.Ctx) error {
	_, err := h.service.Delete(c.UserContext(), c.Params("imageId"))
	metrics.RecordCatalogOperation("image_delete", err == nil)
	if err != nil {
		var cleanup *FileCleanupError
		switch {
		case errors.As(err, &cleanup):
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{"message": cleanup.Error()})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
		}
		return dberr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Đã xoá ảnh"})
}
