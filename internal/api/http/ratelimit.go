package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-service/internal/config"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// NewRateLimiter returns a fixed-window per-client limiter backed by Redis.
// When disabled or when no Redis client is available it passes everything
// through, so the service stays usable without the dependency.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) fiber.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	window := cfg.Window()
	limit := cfg.Requests
	if limit <= 0 {
		limit = 20
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.IP())

		count, err := rdb.Incr(c.Context(), key).Result()
		if err != nil {
			// limiter unavailability must not take auth down with it
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(c.Context(), key, window)
		}
		if count > int64(limit) {
			c.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			return apperrors.NewDomainError("RATE_LIMITED", "too many requests", http.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
