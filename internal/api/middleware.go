package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const headerRequestID = "X-Request-Id"

// withRequestLogging assigns a request id and logs every request once it has
// been handled.
func withRequestLogging(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)

		err := c.Next()
		if err != nil {
			// Render the error now so the logged status is the one sent.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

// withRateLimit rejects requests once the shared token bucket is empty.
func withRateLimit(limiter *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return writeError(c, fiber.StatusTooManyRequests, "Too many requests. Please retry later.")
		}
		return c.Next()
	}
}

// errorHandler renders fiber errors in the same shape as handler errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return writeError(c, code, err.Error())
}
