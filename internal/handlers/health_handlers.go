package handlers

import (
	"net/http"
	"time"

	"sweetshop/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthHandlers serves the unauthenticated probes.
type HealthHandlers struct {
	db repositories.DBTX
}

func NewHealthHandlers(db repositories.DBTX) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// HealthCheck handles GET /health. No identity header required.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Sweet Shop API is running",
	})
}

// ReadinessCheck handles GET /health/ready and verifies the database is
// reachable.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
