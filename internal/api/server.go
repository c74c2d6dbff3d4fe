// Package api exposes statement scoring over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/insightdelivered/statement-scorer/internal/metrics"
)

// Options configures the HTTP application.
type Options struct {
	BodyLimit          int
	RateLimitPerSecond float64
	RateLimitBurst     int
	// Metrics, when set, is served on /metrics.
	Metrics *metrics.Recorder
	Logger  *zap.Logger
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *Handler, opts Options) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if h.Logger == nil {
		h.Logger = logger
	}

	app := fiber.New(fiber.Config{
		AppName:               "statement-scorer",
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(withRequestLogging(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "POST, GET, OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/api/health", h.HandleHealth)
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	limit := rate.Inf
	if opts.RateLimitPerSecond > 0 {
		limit = rate.Limit(opts.RateLimitPerSecond)
	}
	burst := opts.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	app.Post("/api/processScore", withRateLimit(rate.NewLimiter(limit, burst)), h.HandleProcessScore)

	return app
}
