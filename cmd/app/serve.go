package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/wichananm65/beverage-shop/internal/account"
	"github.com/wichananm65/beverage-shop/internal/banner"
	"github.com/wichananm65/beverage-shop/internal/brand"
	"github.com/wichananm65/beverage-shop/internal/category"
	"github.com/wichananm65/beverage-shop/internal/config"
	"github.com/wichananm65/beverage-shop/internal/database"
	"github.com/wichananm65/beverage-shop/internal/logger"
	"github.com/wichananm65/beverage-shop/internal/product"
	"github.com/wichananm65/beverage-shop/internal/productimage"
	"github.com/wichananm65/beverage-shop/internal/quote"
	"github.com/wichananm65/beverage-shop/internal/realtime"
	"github.com/wichananm65/beverage-shop/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return database.Open(ctx, cfg.DatabaseURL)
}

func tokenStore(ctx context.Context, cfg config.Config, log *slog.Logger) (account.TokenStore, func()) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, keeping auth codes in memory")
		return account.NewMemoryTokenStore(), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, keeping auth codes in memory", "addr", cfg.RedisAddr, "error", err)
		rdb.Close()
		return account.NewMemoryTokenStore(), func() {}
	}
	return account.NewRedisTokenStore(rdb), func() { rdb.Close() }
}

func mailer(cfg config.Config, log *slog.Logger) account.Mailer {
	if cfg.Mail.Host == "" {
		return account.LogMailer{Log: log}
	}
	return account.SMTPMailer{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}
}

func buildServices(ctx context.Context, cfg config.Config, db *sql.DB, log *slog.Logger) (services, func(), error) {
	bucket, err := storage.New(ctx, storage.Options{
		Driver:    cfg.Storage.Driver,
		Bucket:    cfg.Storage.Bucket,
		LocalRoot: cfg.Storage.LocalRoot,
		BaseURL:   cfg.Storage.URL,
		Region:    cfg.Storage.Region,
		Key:       cfg.Storage.Key,
		Secret:    cfg.Storage.Secret,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return services{}, nil, err
	}

	tokens, closeTokens := tokenStore(ctx, cfg, log)

	categoryRepo := category.NewPostgresRepository(db)
	brandRepo := brand.NewPostgresRepository(db)
	images := productimage.NewService(productimage.NewPostgresRepository(db), bucket)

	return services{
		accounts:   account.NewService(account.NewPostgresRepository(db), tokens, mailer(cfg, log), cfg.JWTSecret, cfg.SiteURL),
		categories: category.NewService(categoryRepo),
		brands:     brand.NewService(brandRepo),
		products:   product.NewService(product.NewPostgresRepository(db), categoryRepo, brandRepo, images),
		images:     images,
		banners:    banner.NewService(banner.NewPostgresRepository(db)),
		quotes:     quote.NewService(quote.NewPostgresRepository(db), quote.LogNotifier{Log: log}),
		hub:        realtime.NewHub(),
	}, closeTokens, nil
}

func serve(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.IsProduction())
	slog.SetDefault(log)

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, closeTokens, err := buildServices(ctx, cfg, db, log)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	defer closeTokens()

	go func() {
		if err := realtime.NewListener(cfg.DatabaseURL, svc.hub, log).Run(ctx); err != nil {
			log.Error("realtime listener stopped", "error", err)
		}
	}()

	app := newApp(cfg, log, svc)

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr, "env", cfg.AppEnv)
		errc <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
