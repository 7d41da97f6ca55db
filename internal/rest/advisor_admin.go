package rest

import (
	"context"
	"net/http"
	"smelterAdvisor/domain"

	jsonres "smelterAdvisor/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AdvisorAdminHandler struct {
		validate     *validator.Validate
		paramService ParameterService
	}

	ParameterService interface {
		Parameters(ctx context.Context) []domain.ParameterConfig
		UpsertParameter(ctx context.Context, p domain.ParameterConfig) error
	}

	ParameterRequest struct {
		Name           string   `json:"name" validate:"required,max=200"`
		Unit           string   `json:"unit" validate:"max=50"`
		Coefficient    float64  `json:"coefficient"`
		NormMin        *float64 `json:"norm_min"`
		NormMax        *float64 `json:"norm_max"`
		MagnitudeScale float64  `json:"magnitude_scale" validate:"gte=0"`
		Enabled        *bool    `json:"enabled"`
	}
)

func NewAdvisorAdminHandler(svc ParameterService) *AdvisorAdminHandler {
	return &AdvisorAdminHandler{
		validate:     validator.New(),
		paramService: svc,
	}
}

// GET /api/v1/admin/parameters
func (h *AdvisorAdminHandler) ListParameters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.paramService.Parameters(c.Request().Context()))
}

// PUT /api/v1/admin/parameters
func (h *AdvisorAdminHandler) UpsertParameter(c echo.Context) error {
	var req ParameterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	p := domain.ParameterConfig{
		Name:           req.Name,
		Unit:           req.Unit,
		Coefficient:    req.Coefficient,
		NormMin:        req.NormMin,
		NormMax:        req.NormMax,
		MagnitudeScale: req.MagnitudeScale,
		Enabled:        enabled,
	}

	if err := h.paramService.UpsertParameter(c.Request().Context(), p); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("parameter updated"))
}
