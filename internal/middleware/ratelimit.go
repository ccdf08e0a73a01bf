package middleware

import (
	"strconv"
	"time"

	"littlelemon/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Throttle returns two limiters: one for anonymous callers keyed by client IP
// and one for authenticated callers keyed by user ID. Exactly one of them
// applies to a request. It must run after Authenticate. storage may be nil,
// in which case the limiter keeps counters in memory.
func Throttle(cfg config.RateLimitConfig, storage fiber.Storage) []fiber.Handler {
	anon := limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return CallerFrom(c).Authenticated()
		},
		Max:        cfg.AnonPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "anon:" + c.IP()
		},
		LimitReached: limitReached,
		Storage:      storage,
	})
	user := limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return !CallerFrom(c).Authenticated()
		},
		Max:        cfg.UserPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "user:" + strconv.FormatUint(uint64(CallerFrom(c).UserID), 10)
		},
		LimitReached: limitReached,
		Storage:      storage,
	})
	return []fiber.Handler{anon, user}
}

func limitReached(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error": "Request was throttled.",
	})
}
