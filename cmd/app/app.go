package main

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/wichananm65/beverage-shop/internal/account"
	"github.com/wichananm65/beverage-shop/internal/banner"
	"github.com/wichananm65/beverage-shop/internal/brand"
	"github.com/wichananm65/beverage-shop/internal/category"
	"github.com/wichananm65/beverage-shop/internal/config"
	"github.com/wichananm65/beverage-shop/internal/featured"
	"github.com/wichananm65/beverage-shop/internal/logger"
	"github.com/wichananm65/beverage-shop/internal/metrics"
	"github.com/wichananm65/beverage-shop/internal/product"
	"github.com/wichananm65/beverage-shop/internal/productimage"
	"github.com/wichananm65/beverage-shop/internal/quote"
	"github.com/wichananm65/beverage-shop/internal/realtime"
)

type services struct {
	accounts   *account.Service
	categories *category.Service
	brands     *brand.Service
	products   *product.Service
	images     *productimage.Service
	banners    *banner.Service
	quotes     *quote.Service
	hub        *realtime.Hub
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Có lỗi xảy ra. Vui lòng thử lại."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	}))
}

// newApp mounts every route. Public routes come first; everything after the
// auth group needs a valid session, and /api/v1/admin also needs is_admin.
func newApp(cfg config.Config, log *slog.Logger, s services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		BodyLimit:    20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))
	app.Use(metrics.Middleware())
	setupCORS(app, cfg.CORSOrigins)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", metrics.Handler())

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		app.Static("/storage/product-images", cfg.Storage.LocalRoot)
	}

	accountHandler := account.NewHandler(s.accounts, cfg.IsProduction())
	categoryHandler := category.NewHandler(s.categories)
	brandHandler := brand.NewHandler(s.brands)
	productHandler := product.NewHandler(s.products)
	imageHandler := productimage.NewHandler(s.images)
	quoteHandler := quote.NewHandler(s.quotes)

	accountHandler.RegisterPublicRoutes(app)
	banner.NewHandler(s.banners).RegisterPublicRoutes(app)
	featured.NewHandler(featured.NewService(s.products, s.banners)).RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	brandHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	quoteHandler.RegisterPublicRoutes(app)
	realtime.NewHandler(s.hub).RegisterPublicRoutes(app)

	authed := app.Group("/api/v1", s.accounts.Middleware())
	accountHandler.RegisterProtectedRoutes(authed)

	admin := authed.Group("/admin", s.accounts.RequireAdmin())
	categoryHandler.RegisterAdminRoutes(admin)
	brandHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	imageHandler.RegisterAdminRoutes(admin)
	quoteHandler.RegisterAdminRoutes(admin)

	return app
}
