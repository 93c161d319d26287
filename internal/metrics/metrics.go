// Package metrics exposes Prometheus instrumentation for the shop API.
//
//	app.Use(metrics.Middleware())
//	app.Get("/metrics", metrics.Handler())
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beverage_shop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beverage_shop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	CatalogOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beverage_shop",
			Subsystem: "catalog",
			Name:      "operations_total",
			Help:      "Catalog and inbox mutations by operation and outcome.",
		},
		[]string{"operation", "status"},
	)

	RealtimeRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "beverage_shop",
		Subsystem: "realtime",
		Name:      "refreshes_total",
		Help:      "Refresh events pushed to realtime subscribers.",
	})

	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "beverage_shop",
		Subsystem: "realtime",
		Name:      "subscribers",
		Help:      "Connected realtime subscribers.",
	})
)

// RecordCatalogOperation counts one admin mutation.
func RecordCatalogOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	CatalogOperations.WithLabelValues(operation, status).Inc()
}

// Middleware records request count and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		RequestTotal.WithLabelValues(labels...).Inc()
		RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
