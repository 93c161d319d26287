// Package logger builds the service's slog logger and the request logging
// middleware.
//
//	log := logger.WithCtx(c.UserContext())
//	log.Info("product saved", "id", id)
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// New returns a JSON logger for production and a text logger otherwise.
func New(w io.Writer, production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type ctxKey struct{}

// InjectLogger stores log in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithCtx returns the request logger stored in ctx, or the default logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// Middleware tags a per-request logger with the request id set by fiber's
// requestid middleware and logs each request once it completes.
func Middleware(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		log := base
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			log = base.With("request_id", rid)
		}
		c.SetUserContext(InjectLogger(c.UserContext(), log))

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		attrs := []any{
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"latency", time.Since(start).String(),
		}
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			log.Error("request", append(attrs, "error", err)...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
		return err
	}
}
