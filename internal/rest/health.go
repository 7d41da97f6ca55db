package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type (
	HealthHandler struct {
		version string
		probe   EstimatorProbe
	}

	EstimatorProbe interface {
		EstimatorName() string
		EstimatorAvailable() bool
	}
)

func NewHealthHandler(version string, probe EstimatorProbe) *HealthHandler {
	return &HealthHandler{version: version, probe: probe}
}

// GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	status := "healthy"
	if !h.probe.EstimatorAvailable() {
		status = "degraded"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":    status,
		"version":   h.version,
		"estimator": h.probe.EstimatorName(),
		"time":      time.Now().UTC().Format(time.RFC3339),
	})
}
