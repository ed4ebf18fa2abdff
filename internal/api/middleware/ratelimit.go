package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RateLimiter abstracts the fixed-window counter (Redis).
type RateLimiter interface {
	Allow(ctx context.Context, scope, caller string, limit int, window time.Duration) (bool, error)
}

// RateLimit enforces a per-caller request budget for one route scope.
// Callers are keyed by client IP. When the limiter backend is unavailable
// the request is let through: availability wins over strict limiting.
func RateLimit(limiter RateLimiter, scope string, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), scope, c.RealIP(), limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
