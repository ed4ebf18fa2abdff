package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CheckFunc probes a backing dependency and returns nil when it is reachable.
type CheckFunc func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]CheckFunc
}

func NewHealthHandler(checks map[string]CheckFunc) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Live reports process liveness. It never checks dependencies.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the service can take traffic. Each dependency gets a
// short independent deadline so one slow backend cannot mask the other.
func (h *HealthHandler) Ready(c echo.Context) error {
	results := map[string]string{}
	healthy := true

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		err := check(ctx)
		cancel()
		if err != nil {
			results[name] = "unreachable"
			healthy = false
			continue
		}
		results[name] = "ok"
	}

	status := http.StatusOK
	body := map[string]any{"status": "ok", "checks": results}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	return c.JSON(status, body)
}
