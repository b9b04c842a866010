package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// RateLimitMiddleware bounds requests per client IP with a fixed window.
// Counters live in a go-cache instance so stale windows expire on their own.
func RateLimitMiddleware(limit int, window time.Duration) fiber.Handler {
	counters := cache.New(window, 2*window)

	return func(ctx *fiber.Ctx) error {
		if limit <= 0 {
			return ctx.Next()
		}

		key := ctx.IP()
		if err := counters.Add(key, int64(1), window); err != nil {
			count, incErr := counters.IncrementInt64(key, 1)
			if incErr == nil && count > int64(limit) {
				return ctx.Status(fiber.StatusTooManyRequests).
					JSON(ErrorResponse("Too many requests. Please slow down and try again shortly."))
			}
		}

		return ctx.Next()
	}
}
